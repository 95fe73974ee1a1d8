package pkg

import (
	"sync"

	"go.uber.org/zap"

	"campusanon/config"
)

const (
	mailerWorkers = 3
	mailerBuffer  = 64
)

type mailJob struct {
	to      string
	subject string
	html    string
}

// Mailer is the bounded pool for outbound mail. Requests enqueue and
// return immediately; delivery failures are logged, never surfaced, and
// never invalidate whatever the mail carried.
type Mailer struct {
	cfg  config.MailConfig
	jobs chan mailJob
	wg   sync.WaitGroup
	log  *zap.Logger

	// send is swappable for tests
	send func(cfg config.MailConfig, to, subject, html string) error
}

func NewMailer(cfg config.MailConfig, log *zap.Logger) *Mailer {
	m := &Mailer{
		cfg:  cfg,
		jobs: make(chan mailJob, mailerBuffer),
		log:  log,
		send: SendEmail,
	}
	for i := 0; i < mailerWorkers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
	return m
}

func (m *Mailer) worker() {
	defer m.wg.Done()
	for job := range m.jobs {
		if err := m.send(m.cfg, job.to, job.subject, job.html); err != nil {
			m.log.Error("mail send failed", zap.String("to", job.to), zap.Error(err))
			continue
		}
		m.log.Info("mail sent", zap.String("to", job.to))
	}
}

// Enqueue hands the message to the pool. Blocks only if the buffer is full.
func (m *Mailer) Enqueue(to, subject, html string) {
	m.jobs <- mailJob{to: to, subject: subject, html: html}
}

// Close stops accepting work and waits for in-flight sends to finish.
func (m *Mailer) Close() {
	close(m.jobs)
	m.wg.Wait()
}
