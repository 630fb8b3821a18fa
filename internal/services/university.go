package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/normalization"
	"github.com/quizmize/backend/internal/repos"
	"github.com/quizmize/backend/internal/types"
)

const (
	universityPostMaxLen    = 1000
	universityCommentMaxLen = 500

	courseCreditsMin = 1
	courseCreditsMax = 10
	courseLevelMin   = 1
	courseLevelMax   = 5
)

type CreateUniversityInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type CreateCourseInput struct {
	FacultyIndex int    `json:"facultyIndex"`
	CourseCode   string `json:"courseCode"`
	CourseName   string `json:"courseName"`
	Description  string `json:"description"`
	Credits      int    `json:"credits"`
	Level        int    `json:"level"`
}

type CreateClassroomInput struct {
	Name     string                  `json:"name"`
	Section  string                  `json:"section"`
	Schedule types.ClassroomSchedule `json:"schedule"`
}

type LikeResult struct {
	LikesCount int  `json:"likesCount"`
	IsLiked    bool `json:"isLiked"`
}

type UniversityService interface {
	CreateUniversity(ctx context.Context, actorID uuid.UUID, input CreateUniversityInput) (*types.University, error)
	ListUniversities(ctx context.Context) ([]*types.University, error)
	GetUniversity(ctx context.Context, universityID uuid.UUID) (*types.University, error)
	JoinUniversity(ctx context.Context, actorID, universityID uuid.UUID) (*types.University, error)
	JoinUniversityByCode(ctx context.Context, actorID uuid.UUID, code string) (*types.University, error)

	CreateUniversityPost(ctx context.Context, actorID, universityID uuid.UUID, content string) (*types.UniversityPost, error)
	ListUniversityPosts(ctx context.Context, universityID uuid.UUID) ([]types.UniversityPost, error)
	CommentOnPost(ctx context.Context, actorID, universityID, postID uuid.UUID, content string) (*types.UniversityComment, error)
	ToggleLikePost(ctx context.Context, actorID, universityID, postID uuid.UUID) (*LikeResult, error)

	CreateFaculty(ctx context.Context, actorID, universityID uuid.UUID, name, description, contactEmail string) (*types.Faculty, error)
	ListFaculties(ctx context.Context, universityID uuid.UUID) ([]types.Faculty, error)
	CreateCourse(ctx context.Context, actorID, universityID uuid.UUID, input CreateCourseInput) (*types.Course, error)
	ListFacultyCourses(ctx context.Context, universityID uuid.UUID, facultyIndex int) ([]types.Course, error)
	GetCourse(ctx context.Context, universityID uuid.UUID, facultyIndex int, courseCode string) (*types.Course, error)
	AddCoursePost(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode string, postType types.CoursePostType, content string) (*types.UniversityPost, error)

	CreateClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode string, input CreateClassroomInput) (*types.Classroom, error)
	JoinClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode, classroomName string) (*types.Classroom, error)
	LeaveClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode, classroomName string) error
}

type universityService struct {
	db             *gorm.DB
	log            *logger.Logger
	universityRepo repos.UniversityRepo
	userRepo       repos.UserRepo
}

func NewUniversityService(db *gorm.DB, log *logger.Logger, universityRepo repos.UniversityRepo, userRepo repos.UserRepo) UniversityService {
	serviceLog := log.With("service", "UniversityService")
	return &universityService{
		db:             db,
		log:            serviceLog,
		universityRepo: universityRepo,
		userRepo:       userRepo,
	}
}

func (us *universityService) CreateUniversity(ctx context.Context, actorID uuid.UUID, input CreateUniversityInput) (*types.University, error) {
	input.Name = normalization.TrimInputString(input.Name)
	input.Location = normalization.TrimInputString(input.Location)
	if input.Name == "" {
		return nil, apierr.Validation("University name is required")
	}
	if input.Location == "" {
		return nil, apierr.Validation("University location is required")
	}

	joinCode, err := types.NewJoinCode()
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to generate join code: %w", err))
	}

	university := &types.University{
		Name:         input.Name,
		Location:     input.Location,
		Website:      normalization.TrimInputString(input.Website),
		Description:  normalization.TrimInputString(input.Description),
		LogoURL:      "/assets/default-university-logo.png",
		AverageLevel: 1,
		Settings: types.UniversitySettings{
			JoinCode:                 joinCode,
			IsPublic:                 true,
			AllowStudentRegistration: true,
		},
	}
	// The creator runs the place.
	university.AddMember(actorID, types.UniversityRoleAdmin, nil)

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := us.universityRepo.Create(ctx, tx, university); cErr != nil {
			if apierr.IsDuplicateKey(cErr) {
				return apierr.Conflict("name", "University with this name already exists")
			}
			return fmt.Errorf("Failed to create university: %w", cErr)
		}
		return nil
	}); err != nil {
		return nil, apierr.From(err)
	}

	us.log.Info("university created", "university_id", university.ID, "name", university.Name, "created_by", actorID)
	return university, nil
}

func (us *universityService) ListUniversities(ctx context.Context) ([]*types.University, error) {
	universities, err := us.universityRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("Failed to list universities: %w", err))
	}
	return universities, nil
}

func (us *universityService) GetUniversity(ctx context.Context, universityID uuid.UUID) (*types.University, error) {
	university, err := us.load(ctx, nil, universityID)
	if err != nil {
		return nil, apierr.From(err)
	}
	return university, nil
}

func (us *universityService) JoinUniversity(ctx context.Context, actorID, universityID uuid.UUID) (*types.University, error) {
	var joined *types.University
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		return us.addStudent(ctx, tx, university, actorID, &joined)
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return joined, nil
}

func (us *universityService) JoinUniversityByCode(ctx context.Context, actorID uuid.UUID, code string) (*types.University, error) {
	code = strings.ToUpper(normalization.TrimInputString(code))
	if !types.ValidJoinCode(code) {
		return nil, apierr.NotFound("university code")
	}

	var joined *types.University
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, gErr := us.universityRepo.GetByJoinCode(ctx, tx, code)
		if gErr != nil {
			if errors.Is(gErr, gorm.ErrRecordNotFound) {
				return apierr.NotFound("university code")
			}
			return fmt.Errorf("Failed to look up join code: %w", gErr)
		}
		return us.addStudent(ctx, tx, university, actorID, &joined)
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return joined, nil
}

func (us *universityService) addStudent(ctx context.Context, tx *gorm.DB, university *types.University, actorID uuid.UUID, out **types.University) error {
	if university.IsMember(actorID) {
		return apierr.Conflict("university", "You are already a member of this university")
	}
	university.AddMember(actorID, types.UniversityRoleStudent, &types.StudentInfo{
		EnrollmentDate: time.Now(),
		CurrentLevel:   1,
	})
	if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
		return fmt.Errorf("Failed to save university: %w", sErr)
	}
	us.log.Info("university member joined", "university_id", university.ID, "user_id", actorID)
	*out = university
	return nil
}

// CreateUniversityPost is admin only. New posts go to the front so the feed
// reads newest first.
func (us *universityService) CreateUniversityPost(ctx context.Context, actorID, universityID uuid.UUID, content string) (*types.UniversityPost, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.Validation("Post content cannot be empty")
	}
	if len(content) > universityPostMaxLen {
		return nil, apierr.Validation("Post cannot exceed %d characters", universityPostMaxLen)
	}

	var created *types.UniversityPost
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		role, ok := university.RoleOf(actorID)
		if !ok || role != types.UniversityRoleAdmin {
			return apierr.Forbidden("Only university admins can create posts")
		}

		authorName := us.resolveName(ctx, tx, actorID)
		now := time.Now()
		post := types.UniversityPost{
			ID:         uuid.New(),
			Content:    content,
			AuthorID:   actorID,
			AuthorName: authorName,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		university.Posts = append([]types.UniversityPost{post}, university.Posts...)

		university.AddMemberXP(actorID, XPAwardPost)

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &university.Posts[0]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

func (us *universityService) ListUniversityPosts(ctx context.Context, universityID uuid.UUID) ([]types.UniversityPost, error) {
	university, err := us.load(ctx, nil, universityID)
	if err != nil {
		return nil, apierr.From(err)
	}
	if university.Posts == nil {
		return []types.UniversityPost{}, nil
	}
	return university.Posts, nil
}

func (us *universityService) CommentOnPost(ctx context.Context, actorID, universityID, postID uuid.UUID, content string) (*types.UniversityComment, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.Validation("Comment content cannot be empty")
	}
	if len(content) > universityCommentMaxLen {
		return nil, apierr.Validation("Comment cannot exceed %d characters", universityCommentMaxLen)
	}

	var created *types.UniversityComment
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		if !university.IsMember(actorID) {
			return apierr.Forbidden("You must be a member of this university to comment")
		}
		post := university.Post(postID)
		if post == nil {
			return apierr.NotFound("post")
		}

		post.Comments = append(post.Comments, types.UniversityComment{
			Content:    content,
			AuthorID:   actorID,
			AuthorName: us.resolveName(ctx, tx, actorID),
			CreatedAt:  time.Now(),
		})
		post.UpdatedAt = time.Now()

		university.AddMemberXP(actorID, XPAwardComment)

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &post.Comments[len(post.Comments)-1]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

func (us *universityService) ToggleLikePost(ctx context.Context, actorID, universityID, postID uuid.UUID) (*LikeResult, error) {
	var result *LikeResult
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		if !university.IsMember(actorID) {
			return apierr.Forbidden("You must be a member of this university to like posts")
		}
		post := university.Post(postID)
		if post == nil {
			return apierr.NotFound("post")
		}

		liked := post.ToggleLike(actorID)
		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		result = &LikeResult{LikesCount: len(post.Likes), IsLiked: liked}
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return result, nil
}

func (us *universityService) CreateFaculty(ctx context.Context, actorID, universityID uuid.UUID, name, description, contactEmail string) (*types.Faculty, error) {
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, apierr.Validation("Faculty name is required")
	}

	var created *types.Faculty
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		role, ok := university.RoleOf(actorID)
		if !ok || role != types.UniversityRoleAdmin {
			return apierr.Forbidden("Only university admins can create faculties")
		}
		for _, f := range university.Faculties {
			if strings.EqualFold(f.Name, name) {
				return apierr.Conflict("name", "Faculty with this name already exists")
			}
		}

		faculty := types.Faculty{
			Name:         name,
			Description:  normalization.TrimInputString(description),
			ContactEmail: normalization.ParseInputString(contactEmail),
			Courses:      []types.Course{},
		}
		university.Faculties = append(university.Faculties, faculty)

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &university.Faculties[len(university.Faculties)-1]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

func (us *universityService) ListFaculties(ctx context.Context, universityID uuid.UUID) ([]types.Faculty, error) {
	university, err := us.load(ctx, nil, universityID)
	if err != nil {
		return nil, apierr.From(err)
	}
	if university.Faculties == nil {
		return []types.Faculty{}, nil
	}
	return university.Faculties, nil
}

func (us *universityService) CreateCourse(ctx context.Context, actorID, universityID uuid.UUID, input CreateCourseInput) (*types.Course, error) {
	input.CourseCode = strings.ToUpper(normalization.TrimInputString(input.CourseCode))
	input.CourseName = normalization.TrimInputString(input.CourseName)
	if input.CourseCode == "" {
		return nil, apierr.Validation("Course code is required")
	}
	if input.CourseName == "" {
		return nil, apierr.Validation("Course name is required")
	}
	if input.Credits == 0 {
		input.Credits = 3
	}
	if input.Level == 0 {
		input.Level = 1
	}
	if input.Credits < courseCreditsMin || input.Credits > courseCreditsMax {
		return nil, apierr.Validation("Credits must be between %d and %d", courseCreditsMin, courseCreditsMax)
	}
	if input.Level < courseLevelMin || input.Level > courseLevelMax {
		return nil, apierr.Validation("Level must be between %d and %d", courseLevelMin, courseLevelMax)
	}

	var created *types.Course
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		role, ok := university.RoleOf(actorID)
		if !ok || role != types.UniversityRoleAdmin {
			return apierr.Forbidden("Only university admins can create courses")
		}
		faculty := university.Faculty(input.FacultyIndex)
		if faculty == nil {
			return apierr.NotFound("faculty")
		}
		for _, c := range faculty.Courses {
			if strings.EqualFold(c.CourseCode, input.CourseCode) {
				return apierr.Conflict("courseCode", "Course with this code already exists in the selected faculty")
			}
		}

		course := types.Course{
			CourseCode:  input.CourseCode,
			CourseName:  input.CourseName,
			Description: normalization.TrimInputString(input.Description),
			Credits:     input.Credits,
			Level:       input.Level,
			TeacherID:   actorID,
			Classrooms:  []types.Classroom{},
		}
		faculty.Courses = append(faculty.Courses, course)

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &faculty.Courses[len(faculty.Courses)-1]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

func (us *universityService) ListFacultyCourses(ctx context.Context, universityID uuid.UUID, facultyIndex int) ([]types.Course, error) {
	university, err := us.load(ctx, nil, universityID)
	if err != nil {
		return nil, apierr.From(err)
	}
	faculty := university.Faculty(facultyIndex)
	if faculty == nil {
		return nil, apierr.NotFound("faculty")
	}
	if faculty.Courses == nil {
		return []types.Course{}, nil
	}
	return faculty.Courses, nil
}

func (us *universityService) GetCourse(ctx context.Context, universityID uuid.UUID, facultyIndex int, courseCode string) (*types.Course, error) {
	university, err := us.load(ctx, nil, universityID)
	if err != nil {
		return nil, apierr.From(err)
	}
	faculty := university.Faculty(facultyIndex)
	if faculty == nil {
		return nil, apierr.NotFound("faculty")
	}
	for i := range faculty.Courses {
		if strings.EqualFold(faculty.Courses[i].CourseCode, courseCode) {
			return &faculty.Courses[i], nil
		}
	}
	return nil, apierr.NotFound("course")
}

// AddCoursePost lets the course teacher or a university admin post into a
// course feed.
func (us *universityService) AddCoursePost(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode string, postType types.CoursePostType, content string) (*types.UniversityPost, error) {
	content = normalization.TrimInputString(content)
	if content == "" {
		return nil, apierr.Validation("Post content cannot be empty")
	}
	if len(content) > universityPostMaxLen {
		return nil, apierr.Validation("Post cannot exceed %d characters", universityPostMaxLen)
	}
	if postType == "" {
		postType = types.CoursePostGeneral
	}
	if !types.ValidCoursePostType(postType) {
		return nil, apierr.Validation("Invalid post type")
	}

	var created *types.UniversityPost
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		faculty := university.Faculty(facultyIndex)
		if faculty == nil {
			return apierr.NotFound("faculty")
		}
		var course *types.Course
		for i := range faculty.Courses {
			if strings.EqualFold(faculty.Courses[i].CourseCode, courseCode) {
				course = &faculty.Courses[i]
				break
			}
		}
		if course == nil {
			return apierr.NotFound("course")
		}

		role, ok := university.RoleOf(actorID)
		isTeacher := course.TeacherID.String() == actorID.String()
		if !ok || (role != types.UniversityRoleAdmin && !isTeacher) {
			return apierr.Forbidden("Only the course teacher or a university admin can post here")
		}

		now := time.Now()
		post := types.UniversityPost{
			ID:         uuid.New(),
			Content:    content,
			AuthorID:   actorID,
			AuthorName: us.resolveName(ctx, tx, actorID),
			PostType:   postType,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		course.Posts = append([]types.UniversityPost{post}, course.Posts...)

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &course.Posts[0]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

// CreateClassroom adds a named section under a course. Admin only, one
// classroom per name within the course.
func (us *universityService) CreateClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode string, input CreateClassroomInput) (*types.Classroom, error) {
	input.Name = normalization.TrimInputString(input.Name)
	if input.Name == "" {
		return nil, apierr.Validation("Classroom name is required")
	}
	if !types.ValidClassroomDay(input.Schedule.Day) {
		return nil, apierr.Validation("Invalid schedule day")
	}

	var created *types.Classroom
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		role, ok := university.RoleOf(actorID)
		if !ok || role != types.UniversityRoleAdmin {
			return apierr.Forbidden("Only university admins can create classrooms")
		}
		course, cErr := courseIn(university, facultyIndex, courseCode)
		if cErr != nil {
			return cErr
		}
		if course.Classroom(input.Name) != nil {
			return apierr.Conflict("name", "Classroom with this name already exists in the course")
		}

		course.Classrooms = append(course.Classrooms, types.Classroom{
			Name:     input.Name,
			Section:  normalization.TrimInputString(input.Section),
			Schedule: input.Schedule,
			Students: []types.ClassroomStudent{},
			Level:    1,
		})

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		created = &course.Classrooms[len(course.Classrooms)-1]
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return created, nil
}

func (us *universityService) JoinClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode, classroomName string) (*types.Classroom, error) {
	classroomName = normalization.TrimInputString(classroomName)
	if classroomName == "" {
		return nil, apierr.Validation("Classroom name is required")
	}

	var joined *types.Classroom
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		if !university.IsMember(actorID) {
			return apierr.Forbidden("Only university members can join classrooms")
		}
		course, cErr := courseIn(university, facultyIndex, courseCode)
		if cErr != nil {
			return cErr
		}
		classroom := course.Classroom(classroomName)
		if classroom == nil {
			return apierr.NotFound("classroom")
		}
		if classroom.Enrolled(actorID) {
			return apierr.Conflict("student", "Already enrolled in this classroom")
		}

		classroom.Students = append(classroom.Students, types.ClassroomStudent{
			StudentID: actorID,
			JoinedAt:  time.Now(),
			Status:    types.ClassroomStudentActive,
		})

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		joined = classroom
		return nil
	})
	if err != nil {
		return nil, apierr.From(err)
	}
	return joined, nil
}

func (us *universityService) LeaveClassroom(ctx context.Context, actorID, universityID uuid.UUID, facultyIndex int, courseCode, classroomName string) error {
	classroomName = normalization.TrimInputString(classroomName)
	if classroomName == "" {
		return apierr.Validation("Classroom name is required")
	}

	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		university, lErr := us.load(ctx, tx, universityID)
		if lErr != nil {
			return lErr
		}
		course, cErr := courseIn(university, facultyIndex, courseCode)
		if cErr != nil {
			return cErr
		}
		classroom := course.Classroom(classroomName)
		if classroom == nil {
			return apierr.NotFound("classroom")
		}
		if !classroom.RemoveStudent(actorID) {
			return apierr.Forbidden("Not enrolled in this classroom")
		}

		if sErr := us.universityRepo.Save(ctx, tx, university); sErr != nil {
			return fmt.Errorf("Failed to save university: %w", sErr)
		}
		return nil
	})
	if err != nil {
		return apierr.From(err)
	}
	return nil
}

func courseIn(university *types.University, facultyIndex int, courseCode string) (*types.Course, error) {
	faculty := university.Faculty(facultyIndex)
	if faculty == nil {
		return nil, apierr.NotFound("faculty")
	}
	for i := range faculty.Courses {
		if strings.EqualFold(faculty.Courses[i].CourseCode, courseCode) {
			return &faculty.Courses[i], nil
		}
	}
	return nil, apierr.NotFound("course")
}

func (us *universityService) load(ctx context.Context, tx *gorm.DB, universityID uuid.UUID) (*types.University, error) {
	university, err := us.universityRepo.GetByID(ctx, tx, universityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("university")
		}
		return nil, fmt.Errorf("Failed to load university: %w", err)
	}
	return university, nil
}

func (us *universityService) resolveName(ctx context.Context, tx *gorm.DB, userID uuid.UUID) string {
	user, err := us.userRepo.GetByID(ctx, tx, userID)
	if err != nil {
		return ""
	}
	return user.FullName
}
