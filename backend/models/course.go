package models

import "time"

// Course levels and statuses accepted on create/update.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"

	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

// Chapter content types.
const (
	ChapterTypeText  = "Text"
	ChapterTypeVideo = "Video"
	ChapterTypeQuiz  = "Quiz"
)

// Course owns its sections/chapters/quizzes exclusively. Sections and
// chapters are replaced wholesale on course update, never diffed.
type Course struct {
	ID          string       `gorm:"primaryKey" json:"courseId"`
	TeacherID   string       `gorm:"index" json:"teacherId"`
	TeacherName string       `json:"teacherName"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Image       string       `json:"image"`
	Price       int64        `json:"price"` // cents
	Level       string       `json:"level"`
	Status      string       `json:"status"`
	Sections    []Section    `json:"sections"`
	Enrollments []Enrollment `json:"enrollments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Section struct {
	ID          string    `gorm:"primaryKey" json:"sectionId"`
	CourseID    string    `gorm:"index" json:"-"`
	Title       string    `json:"sectionTitle"`
	Description string    `json:"sectionDescription,omitempty"`
	Objectives  string    `json:"objectives,omitempty"`
	Duration    int       `json:"duration,omitempty"` // minutes
	Position    int       `json:"-"`
	Chapters    []Chapter `json:"chapters"`
}

type Chapter struct {
	ID        string    `gorm:"primaryKey" json:"chapterId"`
	SectionID string    `gorm:"index" json:"-"`
	Type      string    `json:"type"` // Text, Video or Quiz
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Video     string    `json:"video,omitempty"`
	Position  int       `json:"-"`
	Quizzes   []Quiz    `json:"quizzes"`
	Comments  []Comment `json:"comments"`
}

type Quiz struct {
	ID            string       `gorm:"primaryKey" json:"id"`
	ChapterID     string       `gorm:"index" json:"-"`
	Question      string       `json:"question"`
	Options       []QuizOption `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"` // option id
}

type QuizOption struct {
	ID       string `gorm:"primaryKey" json:"id"`
	QuizID   string `gorm:"index" json:"-"`
	Value    string `json:"value"`
	Position int    `json:"-"`
}

type Comment struct {
	ID        string `gorm:"primaryKey" json:"commentId"`
	ChapterID string `gorm:"index" json:"-"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Enrollment is a course membership entry. The composite primary key makes a
// repeated enrollment of the same user a constraint violation instead of a
// silent duplicate, and inserting a row never races with other purchasers.
type Enrollment struct {
	CourseID  string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
