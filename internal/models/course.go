package models

type MaterialType string

const (
	MaterialPDF   MaterialType = "PDF"
	MaterialVideo MaterialType = "VIDEO"
)

type Material struct {
	ID    string       `json:"id"`
	Type  MaterialType `json:"type" validate:"required,material_type"`
	Title string       `json:"title" validate:"required"`
	URL   string       `json:"url" validate:"required,url"`
}

// Module owns an ordered sequence of materials and its contribution to
// the course-wide question pool.
type Module struct {
	ID        string     `json:"id"`
	Title     string     `json:"title" validate:"required"`
	Materials []Material `json:"materials"`
	Questions []Question `json:"questions"`
}

// Course owns an ordered sequence of modules and references exactly one
// exam by id.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"max=1000"`
	ImageURL    string   `json:"imageUrl"`
	Modules     []Module `json:"modules"`
	ExamID      string   `json:"examId"`
}

// QuestionPool concatenates all module questions in module order then
// question order. This is the source population for exam sampling.
func (c Course) QuestionPool() []Question {
	var pool []Question
	for _, m := range c.Modules {
		pool = append(pool, m.Questions...)
	}
	return pool
}

// MaterialIDs lists every material id in the course, in order.
func (c Course) MaterialIDs() []string {
	var ids []string
	for _, m := range c.Modules {
		for _, mat := range m.Materials {
			ids = append(ids, mat.ID)
		}
	}
	return ids
}
