package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eduplex/eduplex-backend/internal/course"
	"github.com/eduplex/eduplex-backend/internal/storage"
)

// POST /api/teacher/courses
func CreateCourseHandler(svc *course.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft course.CourseDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeJSON(w, http.StatusBadRequest, errBody{Error: "bad json"})
			return
		}
		c, err := svc.CreateCourse(r.Context(), callerFrom(r), draft)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	}
}

// GET /api/teacher/courses and GET /api/student/my-courses
func ListMyCoursesHandler(svc *course.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListMine(r.Context(), callerFrom(r))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /api/student/courses — published catalog, no auth required.
func ListPublishedCoursesHandler(svc *course.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListPublished(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /api/student/courses/{courseID}/enroll
func EnrollHandler(svc *course.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		if err := svc.Enroll(r.Context(), callerFrom(r), courseID); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "enrolled"})
	}
}

// POST /api/teacher/lessons — multipart form; optional lesson file goes to
// the blob store and its key lands in file_url.
func CreateLessonHandler(svc *course.Service, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := course.LessonDraft{
			CourseID: r.FormValue("course_id"),
			Title:    r.FormValue("title"),
			Content:  r.FormValue("content"),
			VideoURL: r.FormValue("video_url"),
		}
		if v := r.FormValue("order"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				draft.Order = n
			}
		}
		if v := r.FormValue("duration_min"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				draft.DurationMin = n
			}
		}
		if f, hdr, err := r.FormFile("file"); err == nil {
			defer f.Close()
			key := storage.UploadKey("lessons", hdr.Filename)
			if _, err := bs.Put(key, f); err != nil {
				writeJSON(w, http.StatusInternalServerError, errBody{Error: "storage error"})
				return
			}
			draft.FileURL = "/uploads/" + key
		}
		l, err := svc.CreateLesson(r.Context(), callerFrom(r), draft)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, l)
	}
}

// GET /api/courses/{courseID}/lessons — ordered by position.
func ListLessonsHandler(svc *course.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := chi.URLParam(r, "courseID")
		out, err := svc.ListLessons(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
