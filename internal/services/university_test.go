package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/types"
)

func TestCreateUniversity_CreatorIsAdmin(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")

	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{
		Name:     "Analytical University",
		Location: "London",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	role, ok := uni.RoleOf(founder.ID)
	if !ok || role != types.UniversityRoleAdmin {
		t.Fatalf("founder role = %q (%v), want admin", role, ok)
	}
	if !types.ValidJoinCode(uni.Settings.JoinCode) {
		t.Fatalf("join code %q is not valid", uni.Settings.JoinCode)
	}
	if uni.LogoURL == "" {
		t.Fatal("expected a default logo")
	}

	_, err = env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "No Location"})
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation without location, got %v", err)
	}
}

func TestJoinUniversity_ByIDAndByCode(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	studentA := env.signup(t, "Grace Hopper", "grace@example.com")
	studentB := env.signup(t, "Alan Turing", "alan@example.com")
	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joined, err := env.university.JoinUniversity(context.Background(), studentA.ID, uni.ID)
	if err != nil {
		t.Fatalf("join by id: %v", err)
	}
	member := joined.Member(studentA.ID)
	if member == nil || member.Role != types.UniversityRoleStudent {
		t.Fatalf("member = %+v, want student", member)
	}
	if member.StudentInfo == nil || member.StudentInfo.CurrentLevel != 1 {
		t.Fatalf("student info = %+v", member.StudentInfo)
	}

	// Codes are case-insensitive on the way in.
	joined, err = env.university.JoinUniversityByCode(context.Background(), studentB.ID, strings.ToLower(uni.Settings.JoinCode))
	if err != nil {
		t.Fatalf("join by code: %v", err)
	}
	if !joined.IsMember(studentB.ID) {
		t.Fatal("expected membership after code join")
	}

	_, err = env.university.JoinUniversity(context.Background(), studentA.ID, uni.ID)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict on repeat join, got %v", err)
	}

	_, err = env.university.JoinUniversityByCode(context.Background(), studentB.ID, "NOPE1234")
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeNotFound {
		t.Fatalf("expected not found for unknown code, got %v", err)
	}
}

func TestUniversityPosts_AdminOnlyNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	student := env.signup(t, "Grace Hopper", "grace@example.com")
	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.university.JoinUniversity(context.Background(), student.ID, uni.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err = env.university.CreateUniversityPost(context.Background(), student.ID, uni.ID, "students can't post")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for student, got %v", err)
	}

	if _, err := env.university.CreateUniversityPost(context.Background(), founder.ID, uni.ID, "first"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if _, err := env.university.CreateUniversityPost(context.Background(), founder.ID, uni.ID, "second"); err != nil {
		t.Fatalf("post: %v", err)
	}

	posts, err := env.university.ListUniversityPosts(context.Background(), uni.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 2 || posts[0].Content != "second" || posts[1].Content != "first" {
		t.Fatalf("feed order wrong: %+v", posts)
	}
	if posts[0].AuthorName != "Ada Lovelace" {
		t.Fatalf("author name = %q", posts[0].AuthorName)
	}
}

func TestUniversityComments_And_Likes(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	student := env.signup(t, "Grace Hopper", "grace@example.com")
	outsider := env.signup(t, "Alan Turing", "alan@example.com")
	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.university.JoinUniversity(context.Background(), student.ID, uni.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	post, err := env.university.CreateUniversityPost(context.Background(), founder.ID, uni.ID, "welcome week")
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	comment, err := env.university.CommentOnPost(context.Background(), student.ID, uni.ID, post.ID, "see you there")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if comment.AuthorName != "Grace Hopper" {
		t.Fatalf("comment author = %q", comment.AuthorName)
	}

	_, err = env.university.CommentOnPost(context.Background(), outsider.ID, uni.ID, post.ID, "hello")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for non-member, got %v", err)
	}

	_, err = env.university.CommentOnPost(context.Background(), student.ID, uni.ID, post.ID, strings.Repeat("x", universityCommentMaxLen+1))
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation for oversized comment, got %v", err)
	}

	like, err := env.university.ToggleLikePost(context.Background(), student.ID, uni.ID, post.ID)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !like.IsLiked || like.LikesCount != 1 {
		t.Fatalf("like = %+v, want liked with count 1", like)
	}
	like, err = env.university.ToggleLikePost(context.Background(), student.ID, uni.ID, post.ID)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if like.IsLiked || like.LikesCount != 0 {
		t.Fatalf("like = %+v, want removed", like)
	}
}

func TestFacultiesAndCourses(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	faculty, err := env.university.CreateFaculty(context.Background(), founder.ID, uni.ID, "Engineering", "", "eng@example.com")
	if err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	if faculty.Name != "Engineering" {
		t.Fatalf("faculty name = %q", faculty.Name)
	}

	// Faculty names are unique regardless of case.
	_, err = env.university.CreateFaculty(context.Background(), founder.ID, uni.ID, "engineering", "", "")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict on duplicate faculty, got %v", err)
	}

	course, err := env.university.CreateCourse(context.Background(), founder.ID, uni.ID, CreateCourseInput{
		FacultyIndex: 0,
		CourseCode:   "cs101",
		CourseName:   "Intro to Computing",
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	if course.CourseCode != "CS101" {
		t.Fatalf("course code = %q, want uppercased", course.CourseCode)
	}
	if course.Credits != 3 || course.Level != 1 {
		t.Fatalf("defaults = credits %d level %d, want 3/1", course.Credits, course.Level)
	}
	if course.TeacherID != founder.ID {
		t.Fatalf("teacher = %s, want creator", course.TeacherID)
	}

	_, err = env.university.CreateCourse(context.Background(), founder.ID, uni.ID, CreateCourseInput{FacultyIndex: 0, CourseCode: "CS101", CourseName: "Clone"})
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict on duplicate code, got %v", err)
	}

	courses, err := env.university.ListFacultyCourses(context.Background(), uni.ID, 0)
	if err != nil {
		t.Fatalf("list courses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("course count = %d, want 1", len(courses))
	}

	got, err := env.university.GetCourse(context.Background(), uni.ID, 0, "cs101")
	if err != nil {
		t.Fatalf("get course: %v", err)
	}
	if got.CourseName != "Intro to Computing" {
		t.Fatalf("course name = %q", got.CourseName)
	}

	_, err = env.university.GetCourse(context.Background(), uni.ID, 3, "CS101")
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeNotFound {
		t.Fatalf("expected not found for bad faculty index, got %v", err)
	}
}

func TestAddCoursePost(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	student := env.signup(t, "Grace Hopper", "grace@example.com")
	uni, err := env.university.CreateUniversity(context.Background(), founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.university.JoinUniversity(context.Background(), student.ID, uni.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.university.CreateFaculty(context.Background(), founder.ID, uni.ID, "Engineering", "", ""); err != nil {
		t.Fatalf("faculty: %v", err)
	}
	if _, err := env.university.CreateCourse(context.Background(), founder.ID, uni.ID, CreateCourseInput{FacultyIndex: 0, CourseCode: "CS101", CourseName: "Intro"}); err != nil {
		t.Fatalf("course: %v", err)
	}

	post, err := env.university.AddCoursePost(context.Background(), founder.ID, uni.ID, 0, "CS101", "", "Read chapter one")
	if err != nil {
		t.Fatalf("course post: %v", err)
	}
	if post.PostType != types.CoursePostGeneral {
		t.Fatalf("default post type = %q, want general", post.PostType)
	}

	_, err = env.university.AddCoursePost(context.Background(), student.ID, uni.ID, 0, "CS101", types.CoursePostAnnouncement, "not allowed")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for student, got %v", err)
	}
}

func TestClassrooms(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Frank Founder", "frank@example.com")
	student := env.signup(t, "Sally Student", "sally@example.com")
	ctx := context.Background()

	uni, err := env.university.CreateUniversity(ctx, founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create university: %v", err)
	}
	if _, err := env.university.JoinUniversity(ctx, student.ID, uni.ID); err != nil {
		t.Fatalf("join university: %v", err)
	}
	if _, err := env.university.CreateFaculty(ctx, founder.ID, uni.ID, "Engineering", "", ""); err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	if _, err := env.university.CreateCourse(ctx, founder.ID, uni.ID, CreateCourseInput{FacultyIndex: 0, CourseCode: "CS101", CourseName: "Intro"}); err != nil {
		t.Fatalf("create course: %v", err)
	}

	classroom, err := env.university.CreateClassroom(ctx, founder.ID, uni.ID, 0, "CS101", CreateClassroomInput{
		Name:     "Section A",
		Section:  "A",
		Schedule: types.ClassroomSchedule{Day: "Monday", Time: "10:00", Location: "Room 12"},
	})
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	if classroom.Level != 1 || classroom.Schedule.Day != "Monday" {
		t.Fatalf("classroom = %+v", classroom)
	}

	var apiErr *apierr.Error
	_, err = env.university.CreateClassroom(ctx, student.ID, uni.ID, 0, "CS101", CreateClassroomInput{Name: "Section B"})
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for non-admin create, got %v", err)
	}
	_, err = env.university.CreateClassroom(ctx, founder.ID, uni.ID, 0, "CS101", CreateClassroomInput{Name: "section a"})
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict for duplicate classroom name, got %v", err)
	}
	_, err = env.university.CreateClassroom(ctx, founder.ID, uni.ID, 0, "CS101", CreateClassroomInput{
		Name:     "Section C",
		Schedule: types.ClassroomSchedule{Day: "Someday"},
	})
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation for bad schedule day, got %v", err)
	}

	joined, err := env.university.JoinClassroom(ctx, student.ID, uni.ID, 0, "CS101", "Section A")
	if err != nil {
		t.Fatalf("join classroom: %v", err)
	}
	if len(joined.Students) != 1 || joined.Students[0].Status != types.ClassroomStudentActive {
		t.Fatalf("roster = %+v", joined.Students)
	}

	_, err = env.university.JoinClassroom(ctx, student.ID, uni.ID, 0, "CS101", "Section A")
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeConflict {
		t.Fatalf("expected conflict for double enrollment, got %v", err)
	}

	outsider := env.signup(t, "Olive Outsider", "olive@example.com")
	_, err = env.university.JoinClassroom(ctx, outsider.ID, uni.ID, 0, "CS101", "Section A")
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden for non-member join, got %v", err)
	}

	if err := env.university.LeaveClassroom(ctx, student.ID, uni.ID, 0, "CS101", "Section A"); err != nil {
		t.Fatalf("leave classroom: %v", err)
	}
	if err := env.university.LeaveClassroom(ctx, student.ID, uni.ID, 0, "CS101", "Section A"); !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeAuthorization {
		t.Fatalf("expected forbidden when not enrolled, got %v", err)
	}

	course, err := env.university.GetCourse(ctx, uni.ID, 0, "CS101")
	if err != nil {
		t.Fatalf("reload course: %v", err)
	}
	if got := len(course.Classroom("Section A").Students); got != 0 {
		t.Fatalf("roster after leave = %d, want 0", got)
	}
}

func TestCreateUniversityPost_LengthLimit(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	uni, err := env.university.CreateUniversity(ctx, founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create university: %v", err)
	}

	var apiErr *apierr.Error
	_, err = env.university.CreateUniversityPost(ctx, founder.ID, uni.ID, strings.Repeat("x", universityPostMaxLen+1))
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation for oversized post, got %v", err)
	}
	if _, err := env.university.CreateUniversityPost(ctx, founder.ID, uni.ID, strings.Repeat("x", universityPostMaxLen)); err != nil {
		t.Fatalf("post at the limit rejected: %v", err)
	}

	if _, err := env.university.CreateFaculty(ctx, founder.ID, uni.ID, "Engineering", "", ""); err != nil {
		t.Fatalf("create faculty: %v", err)
	}
	if _, err := env.university.CreateCourse(ctx, founder.ID, uni.ID, CreateCourseInput{FacultyIndex: 0, CourseCode: "CS101", CourseName: "Intro"}); err != nil {
		t.Fatalf("create course: %v", err)
	}
	_, err = env.university.AddCoursePost(ctx, founder.ID, uni.ID, 0, "CS101", "", strings.Repeat("y", universityPostMaxLen+1))
	if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
		t.Fatalf("expected validation for oversized course post, got %v", err)
	}
}

func TestCreateCourse_CreditAndLevelBounds(t *testing.T) {
	env := newTestEnv(t)
	founder := env.signup(t, "Ada Lovelace", "ada@example.com")
	ctx := context.Background()

	uni, err := env.university.CreateUniversity(ctx, founder.ID, CreateUniversityInput{Name: "Analytical University", Location: "London"})
	if err != nil {
		t.Fatalf("create university: %v", err)
	}
	if _, err := env.university.CreateFaculty(ctx, founder.ID, uni.ID, "Engineering", "", ""); err != nil {
		t.Fatalf("create faculty: %v", err)
	}

	cases := []struct {
		name  string
		input CreateCourseInput
	}{
		{"credits too high", CreateCourseInput{FacultyIndex: 0, CourseCode: "CS201", CourseName: "x", Credits: 11}},
		{"credits negative", CreateCourseInput{FacultyIndex: 0, CourseCode: "CS202", CourseName: "x", Credits: -1}},
		{"level too high", CreateCourseInput{FacultyIndex: 0, CourseCode: "CS203", CourseName: "x", Level: 6}},
		{"level negative", CreateCourseInput{FacultyIndex: 0, CourseCode: "CS204", CourseName: "x", Level: -2}},
	}
	for _, tc := range cases {
		var apiErr *apierr.Error
		if _, err := env.university.CreateCourse(ctx, founder.ID, uni.ID, tc.input); !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeValidation {
			t.Fatalf("%s: expected validation, got %v", tc.name, err)
		}
	}

	course, err := env.university.CreateCourse(ctx, founder.ID, uni.ID, CreateCourseInput{
		FacultyIndex: 0, CourseCode: "CS301", CourseName: "Algorithms", Credits: 10, Level: 5,
	})
	if err != nil {
		t.Fatalf("create course at bounds: %v", err)
	}
	if course.Credits != 10 || course.Level != 5 {
		t.Fatalf("credits/level = %d/%d, want 10/5", course.Credits, course.Level)
	}

	// Omitted fields still take the defaults.
	course, err = env.university.CreateCourse(ctx, founder.ID, uni.ID, CreateCourseInput{
		FacultyIndex: 0, CourseCode: "CS302", CourseName: "Databases",
	})
	if err != nil {
		t.Fatalf("create course with defaults: %v", err)
	}
	if course.Credits != 3 || course.Level != 1 {
		t.Fatalf("defaults = %d/%d, want 3/1", course.Credits, course.Level)
	}
}
