package report

import (
	"github.com/hostmaint/hostmaint/domain"
	"github.com/hostmaint/hostmaint/domain/model"
)

// Repos holds repositories needed for report use cases.
type Repos struct {
	Run domain.RunRepository
}

// UseCase publishes finished runs and queries the run history.
type UseCase struct {
	Repos  *Repos
	Mailer model.MailerPort
}
