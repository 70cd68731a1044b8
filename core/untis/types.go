package untis

// Element is a subject, room, teacher or class reference inside a lesson.
type Element struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"longname"`
}

// Lesson is one timetable period as returned by getTimetable.
type Lesson struct {
	ID        int       `json:"id"`
	Date      int       `json:"date"`
	StartTime int       `json:"startTime"`
	EndTime   int       `json:"endTime"`
	Code      string    `json:"code,omitempty"`
	Subjects  []Element `json:"su"`
	Rooms     []Element `json:"ro"`
	Teachers  []Element `json:"te"`
	Classes   []Element `json:"kl"`
	Text      string    `json:"lstext,omitempty"`
	SubstText string    `json:"substText,omitempty"`
}

// Absence is one absence entry from the class register.
type Absence struct {
	ID           int    `json:"id"`
	StartDate    int    `json:"startDate"`
	EndDate      int    `json:"endDate"`
	StartTime    int    `json:"startTime"`
	EndTime      int    `json:"endTime"`
	CreateDate   int64  `json:"createDate"`
	LastUpdate   int64  `json:"lastUpdate"`
	CreatedUser  string `json:"createdUser"`
	UpdatedUser  string `json:"updatedUser"`
	Reason       string `json:"reason"`
	Text         string `json:"text"`
	StudentName  string `json:"studentName"`
	ExcuseStatus any    `json:"excuseStatus"`
	IsExcused    any    `json:"isExcused"`
}

// Homework is one homework assignment.
type Homework struct {
	ID        int    `json:"id"`
	LessonID  int    `json:"lessonId"`
	Date      int    `json:"date"`
	DueDate   int    `json:"dueDate"`
	Text      string `json:"text"`
	Remark    string `json:"remark"`
	Completed bool   `json:"completed"`
}

// HomeworkLesson maps a homework's lesson id to its subject.
type HomeworkLesson struct {
	ID         int    `json:"id"`
	Subject    string `json:"subject"`
	LessonType string `json:"lessonType"`
}

// HomeworkResult is the homework payload with its lesson lookup table.
type HomeworkResult struct {
	Homeworks []Homework       `json:"homeworks"`
	Lessons   []HomeworkLesson `json:"lessons"`
}

// Student is an exam participant.
type Student struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
	KlasseName  string `json:"klasse"`
}

// Exam is one scheduled exam. ExamDate arrives as a number or an 8-digit string.
type Exam struct {
	ID               int       `json:"id"`
	ExamType         string    `json:"examType"`
	Name             string    `json:"name"`
	StudentClass     []string  `json:"studentClass"`
	AssignedStudents []Student `json:"assignedStudents"`
	ExamDate         any       `json:"examDate"`
	StartTime        int       `json:"startTime"`
	EndTime          int       `json:"endTime"`
	Subject          string    `json:"subject"`
	Teachers         []string  `json:"teachers"`
	Rooms            []string  `json:"rooms"`
	Text             string    `json:"text"`
}
