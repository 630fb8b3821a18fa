package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizmize/backend/internal/apierr"
	"github.com/quizmize/backend/internal/logger"
	"github.com/quizmize/backend/internal/services"
	"github.com/quizmize/backend/internal/types"
)

type UniversityHandler struct {
	log               *logger.Logger
	universityService services.UniversityService
}

func NewUniversityHandler(log *logger.Logger, universityService services.UniversityService) *UniversityHandler {
	handlerLog := log.With("handler", "UniversityHandler")
	return &UniversityHandler{log: handlerLog, universityService: universityService}
}

func (uh *UniversityHandler) Create(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	var req services.CreateUniversityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	university, err := uh.universityService.CreateUniversity(c.Request.Context(), rd.UserID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "University registered successfully!", "university": university})
}

func (uh *UniversityHandler) List(c *gin.Context) {
	universities, err := uh.universityService.ListUniversities(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"universities": universities})
}

func (uh *UniversityHandler) Get(c *gin.Context) {
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	university, err := uh.universityService.GetUniversity(c.Request.Context(), universityID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"university": university})
}

func (uh *UniversityHandler) Join(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	university, err := uh.universityService.JoinUniversity(c.Request.Context(), rd.UserID, universityID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Successfully joined " + university.Name + "!", "university": university})
}

func (uh *UniversityHandler) JoinByCode(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	university, err := uh.universityService.JoinUniversityByCode(c.Request.Context(), rd.UserID, c.Param("code"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Successfully joined " + university.Name + "!", "university": university})
}

func (uh *UniversityHandler) CreatePost(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	post, err := uh.universityService.CreateUniversityPost(c.Request.Context(), rd.UserID, universityID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Post created successfully!", "post": post})
}

func (uh *UniversityHandler) ListPosts(c *gin.Context) {
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	posts, err := uh.universityService.ListUniversityPosts(c.Request.Context(), universityID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"posts": posts})
}

func (uh *UniversityHandler) CommentOnPost(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	comment, err := uh.universityService.CommentOnPost(c.Request.Context(), rd.UserID, universityID, postID, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Comment added successfully!", "comment": comment})
}

func (uh *UniversityHandler) ToggleLike(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}
	result, err := uh.universityService.ToggleLikePost(c.Request.Context(), rd.UserID, universityID, postID)
	if err != nil {
		RespondError(c, err)
		return
	}
	msg := "Post unliked!"
	if result.IsLiked {
		msg = "Post liked!"
	}
	RespondOK(c, gin.H{"message": msg, "likesCount": result.LikesCount, "isLiked": result.IsLiked})
}

func (uh *UniversityHandler) CreateFaculty(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		ContactEmail string `json:"contactEmail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	faculty, err := uh.universityService.CreateFaculty(c.Request.Context(), rd.UserID, universityID, req.Name, req.Description, req.ContactEmail)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Faculty created successfully!", "faculty": faculty})
}

func (uh *UniversityHandler) ListFaculties(c *gin.Context) {
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	faculties, err := uh.universityService.ListFaculties(c.Request.Context(), universityID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"faculties": faculties})
}

func (uh *UniversityHandler) CreateCourse(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CreateCourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	course, err := uh.universityService.CreateCourse(c.Request.Context(), rd.UserID, universityID, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Course created successfully!", "course": course})
}

func (uh *UniversityHandler) ListFacultyCourses(c *gin.Context) {
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	courses, err := uh.universityService.ListFacultyCourses(c.Request.Context(), universityID, facultyIndex)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (uh *UniversityHandler) GetCourse(c *gin.Context) {
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	course, err := uh.universityService.GetCourse(c.Request.Context(), universityID, facultyIndex, c.Param("courseCode"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"course": course})
}

func (uh *UniversityHandler) CreateCoursePost(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	var req struct {
		Content  string               `json:"content"`
		PostType types.CoursePostType `json:"postType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	post, err := uh.universityService.AddCoursePost(c.Request.Context(), rd.UserID, universityID, facultyIndex, c.Param("courseCode"), req.PostType, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Post created successfully!", "post": post})
}

func (uh *UniversityHandler) CreateClassroom(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	var input services.CreateClassroomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	classroom, err := uh.universityService.CreateClassroom(c.Request.Context(), rd.UserID, universityID, facultyIndex, c.Param("courseCode"), input)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, gin.H{"message": "Classroom created successfully!", "classroom": classroom})
}

func (uh *UniversityHandler) JoinClassroom(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	classroom, err := uh.universityService.JoinClassroom(c.Request.Context(), rd.UserID, universityID, facultyIndex, c.Param("courseCode"), req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Joined classroom successfully!", "classroom": classroom})
}

func (uh *UniversityHandler) LeaveClassroom(c *gin.Context) {
	rd, ok := actor(c)
	if !ok {
		return
	}
	universityID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	facultyIndex, ok := uh.parseFacultyIndex(c)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation("Invalid request body"))
		return
	}
	if err := uh.universityService.LeaveClassroom(c.Request.Context(), rd.UserID, universityID, facultyIndex, c.Param("courseCode"), req.Name); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Left classroom successfully!"})
}

func (uh *UniversityHandler) parseFacultyIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("facultyIndex"))
	if err != nil || idx < 0 {
		RespondError(c, apierr.Validation("Invalid faculty index"))
		return 0, false
	}
	return idx, true
}
