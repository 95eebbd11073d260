// Package jobs holds the queued background jobs.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/showroom/pkg/mail"
	"github.com/shashiranjanraj/showroom/pkg/queue"
)

// OrderConfirmationName is the queue registration name for OrderConfirmation.
const OrderConfirmationName = "jobs.OrderConfirmation"

// OrderConfirmation emails the customer after their order commits. The order
// is already durable when this runs, so a send failure never affects it.
type OrderConfirmation struct {
	OrderID uint   `json:"order_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Total   string `json:"total"`

	mailer *mail.Mailer
}

// RegisterOrderConfirmation binds the job type to the queue with the mailer
// it needs at execution time.
func RegisterOrderConfirmation(q *queue.Manager, mailer *mail.Mailer) {
	q.Register(OrderConfirmationName, func() queue.Job {
		return &OrderConfirmation{mailer: mailer}
	})
}

func (j *OrderConfirmation) Handle() error {
	if j.mailer == nil {
		return fmt.Errorf("jobs: order confirmation has no mailer")
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your order #%d for a total of %s has been received and is pending confirmation.</p>",
		j.Name, j.OrderID, j.Total,
	)
	return j.mailer.To(j.Email).
		Subject(fmt.Sprintf("Order #%d received", j.OrderID)).
		Body(body).
		Send()
}
