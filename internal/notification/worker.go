package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"workshop-scheduler-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush
// library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that push "employee is available
// again" notifications to subscribed operators. It satisfies
// engine.Notifier.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case employeeID := <-wp.jobs:
			wp.sendNotificationsForEmployee(ctx, employeeID)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// EmployeeAvailable queues a notification round for the employee. Called
// by the engine after unassignment; must not block the engine, hence the
// buffered channel with a drop fallback.
func (wp *WorkerPool) EmployeeAvailable(employeeID string) {
	select {
	case wp.jobs <- employeeID:
	default:
		log.Printf("Notification queue full, dropping update for employee %s", employeeID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

func (wp *WorkerPool) sendNotificationsForEmployee(ctx context.Context, employeeID string) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_employee_mapping sem ON sem.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sem.employee_id = ?", employeeID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for employee %s: %v", employeeID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	label := employeeID
	var employee model.Employee
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&employee, "id = ?", employeeID).Error; err != nil {
		log.Printf("Error fetching employee %s: %v", employeeID, err)
	} else if employee.Name != "" {
		label = employee.Name
	}

	log.Printf("Sending %d notifications for employee %s", len(subscriptions), employeeID)
	message := fmt.Sprintf("%s is available for assignment again", label)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
