package job

import (
	"context"
	"encoding/json"

	"github.com/cybersoft/talentmatch/pkg/record"
)

// Description is an analysed job description.
type Description struct {
	JobID          int64       `json:"job_id"`
	JobName        string      `json:"job_name"`
	Certificate    record.List `json:"certificate"`
	Degree         record.List `json:"degree"`
	Experience     record.List `json:"experience"`
	Responsibility record.List `json:"responsibility"`
	SoftSkill      record.List `json:"soft_skill"`
	TechnicalSkill record.List `json:"technical_skill"`
}

// Fields are the keys an analyzer result must carry. job_name comes from the request.
var Fields = []string{
	"certificate",
	"degree",
	"experience",
	"responsibility",
	"soft_skill",
	"technical_skill",
}

// Request is the body of POST /job/analyse. Raw is forwarded to the analyzer as is.
type Request struct {
	JobName string
	Raw     json.RawMessage
}

// Repository: порт хранения описаний вакансий.
type Repository interface {
	Create(ctx context.Context, d Description) (Description, error)
	Get(ctx context.Context, id int64) (Description, error)
	List(ctx context.Context, limit, offset int) ([]Description, error)
	Delete(ctx context.Context, id int64) error
}
