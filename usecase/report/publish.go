package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
)

// PublishInput selects where a finished run goes.
type PublishInput struct {
	Run *model.Run `json:"run"`
	// Log receives the rendered report when set.
	Log io.Writer `json:"-"`
	// SendMail mails the report to MailTo.
	SendMail bool     `json:"send_mail,omitempty"`
	MailFrom string   `json:"mail_from,omitempty"`
	MailTo   []string `json:"mail_to,omitempty"`
}

// PublishOutput reports what was done with the run.
type PublishOutput struct {
	Text   string `json:"text"`
	Mailed bool   `json:"mailed"`
	Saved  bool   `json:"saved"`
}

// Publish renders the run and writes it to the log, the mailer and the run
// repository. Every destination is attempted; the errors are joined.
func (u *UseCase) Publish(ctx context.Context, in *PublishInput) (*PublishOutput, error) {
	if in == nil || in.Run == nil {
		return nil, fmt.Errorf("run is required")
	}
	logger := logging.FromContext(ctx)
	out := &PublishOutput{Text: Render(in.Run)}
	var errs []error

	if in.Log != nil {
		if _, err := io.WriteString(in.Log, out.Text); err != nil {
			errs = append(errs, fmt.Errorf("write report log: %w", err))
		}
	}

	if in.SendMail && u.Mailer != nil && len(in.MailTo) > 0 {
		msg := model.MailMessage{From: in.MailFrom, To: in.MailTo, Subject: Subject(in.Run), Body: out.Text}
		if err := u.Mailer.Send(ctx, msg); err != nil {
			errs = append(errs, fmt.Errorf("send report mail: %w", err))
		} else {
			out.Mailed = true
			logger.Info(ctx, "report mail sent", "to", in.MailTo, "run_id", in.Run.ID)
		}
	}

	if u.Repos != nil && u.Repos.Run != nil {
		if err := u.Repos.Run.Save(ctx, in.Run); err != nil {
			errs = append(errs, fmt.Errorf("save run: %w", err))
		} else {
			out.Saved = true
		}
	}

	return out, errors.Join(errs...)
}
