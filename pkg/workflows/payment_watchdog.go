package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	domain "github.com/ghuser/orderdesk/services/order/domain"
	"github.com/ghuser/orderdesk/services/order/domain/gateways"
	"github.com/ghuser/orderdesk/services/order/domain/models"
	"github.com/ghuser/orderdesk/services/order/domain/repositories"
)

const (
	// TaskQueue is the Temporal task queue for order lifecycle workflows.
	TaskQueue = "orderdesk-orders"

	paymentPollInterval = 30 * time.Second
	paymentDeadline     = 15 * time.Minute
)

// PaymentWatchdogInput identifies the order a watchdog run guards.
type PaymentWatchdogInput struct {
	OrderID int64
}

// PaymentWatchdogWorkflow polls the payment provider until the order's
// payment settles. A declined payment cancels the order immediately; an order
// still unpaid when the deadline lapses is canceled too, releasing the
// kitchen from orders nobody will pay for. A paid order ends the watchdog
// without touching the order.
func PaymentWatchdogWorkflow(ctx workflow.Context, in PaymentWatchdogInput) error {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 3},
	})

	var acts *Activities
	deadline := workflow.Now(ctx).Add(paymentDeadline)

	for workflow.Now(ctx).Before(deadline) {
		var status models.PaymentStatus
		if err := workflow.ExecuteActivity(ctx, acts.CheckPaymentStatus, in.OrderID).Get(ctx, &status); err != nil {
			return err
		}

		switch {
		case status == models.PaymentPaid:
			return nil
		case status.Declined():
			return workflow.ExecuteActivity(ctx, acts.CancelUnpaidOrder, in.OrderID).Get(ctx, nil)
		}

		if err := workflow.Sleep(ctx, paymentPollInterval); err != nil {
			return err
		}
	}

	return workflow.ExecuteActivity(ctx, acts.CancelUnpaidOrder, in.OrderID).Get(ctx, nil)
}

// Activities holds the watchdog's side effects. Registered once per worker
// with the repository and payment gateway wired in.
type Activities struct {
	Repo     repositories.OrderRepository
	Payments gateways.PaymentGateway
}

// CheckPaymentStatus returns the provider's current payment state for the order.
func (a *Activities) CheckPaymentStatus(ctx context.Context, orderID int64) (models.PaymentStatus, error) {
	return a.Payments.GetStatus(ctx, orderID)
}

// CancelUnpaidOrder cancels the order if it is still waiting in Received.
// Orders that advanced (staff confirmed payment) or disappeared are left alone.
func (a *Activities) CancelUnpaidOrder(ctx context.Context, orderID int64) error {
	order, err := a.Repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil
		}
		return err
	}
	if order.Status != models.StatusReceived {
		return nil
	}
	order.Status = models.StatusCanceled
	_, err = a.Repo.Update(ctx, order)
	return err
}

// NewWorker returns a Temporal worker on the order task queue with the
// payment watchdog workflow and its activities registered.
func NewWorker(tc *TemporalClient, acts *Activities) worker.Worker {
	w := worker.New(tc.Client, TaskQueue, worker.Options{})
	w.RegisterWorkflow(PaymentWatchdogWorkflow)
	w.RegisterActivity(acts)
	return w
}

// StartPaymentWatchdog launches a watchdog workflow for the order. The
// workflow id embeds the order id, so a redelivered order.created event
// starts at most one watchdog per order.
func (tc *TemporalClient) StartPaymentWatchdog(ctx context.Context, orderID int64) error {
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        fmt.Sprintf("payment-watchdog-%d", orderID),
		TaskQueue: TaskQueue,
	}, PaymentWatchdogWorkflow, PaymentWatchdogInput{OrderID: orderID})
	if err != nil {
		var already *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &already) {
			return nil
		}
		return fmt.Errorf("start payment watchdog for order %d: %w", orderID, err)
	}
	return nil
}
