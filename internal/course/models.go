package course

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TeacherID   string `json:"teacher_id"`
	Category    string `json:"category"`
	Level       Level  `json:"level"`
	ImageURL    string `json:"image_url,omitempty"`
	IsPublished bool   `json:"is_published"`
	CreatedAt   int64  `json:"created_at"`
}

type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	TeacherID   string `json:"teacher_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
	Order       int    `json:"order"`
	DurationMin int    `json:"duration_min"`
	CreatedAt   int64  `json:"created_at"`
}
