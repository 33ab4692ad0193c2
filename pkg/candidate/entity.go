package candidate

import (
	"context"

	"github.com/cybersoft/talentmatch/pkg/record"
)

// Profile: структурированное резюме кандидата, как его вернул анализатор.
type Profile struct {
	CandidateID    int64       `json:"candidate_id"`
	CandidateName  string      `json:"candidate_name"`
	PhoneNumber    string      `json:"phone_number"`
	Email          string      `json:"email"`
	Degree         record.List `json:"degree"`
	Experience     record.List `json:"experience"`
	TechnicalSkill record.List `json:"technical_skill"`
	Responsibility record.List `json:"responsibility"`
	Certificate    record.List `json:"certificate"`
	SoftSkill      record.List `json:"soft_skill"`
	Comment        string      `json:"comment"`
	JobRecommended record.List `json:"job_recommended"`
}

// Fields are the keys an analyzer result must carry.
var Fields = []string{
	"candidate_name",
	"phone_number",
	"email",
	"degree",
	"experience",
	"technical_skill",
	"responsibility",
	"certificate",
	"soft_skill",
	"comment",
	"job_recommended",
}

// Upload is a CV file received from the client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Repository: порт хранения профилей кандидатов.
type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, id int64) (Profile, error)
	List(ctx context.Context, limit, offset int) ([]Profile, error)
	Delete(ctx context.Context, id int64) error
}
