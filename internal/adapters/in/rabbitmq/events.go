package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
)

type (
	EventAction       string
	EventResourceType string
)

const (
	EventResourceTypeAll      EventResourceType = "_all_"
	EventResourceTypeInvoice  EventResourceType = "invoice"
	EventResourceTypeCustomer EventResourceType = "customer"
)

const (
	EventActionInvalidate EventAction = "invalidate"
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	ResourceID   string
	Action       EventAction
}

type InvoiceEventMessage struct {
	InvoiceID  string `json:"invoice_id"`
	CustomerID int64  `json:"customer_id"`
}

// Пример routingKey:
// clinic.membership-svc.invoice.1794.invalidate
// clinic.membership-svc.customer.42.invalidate
// clinic.membership-svc._all_.0.invalidate
func parseEventRoutingKey(routingKey string) (EventRoutingKey, error) {
	parts := strings.Split(routingKey, ".")
	if len(parts) < 5 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		ResourceID:   parts[3],
		Action:       EventAction(parts[4]),
	}, nil
}

func (l *MembershipEventListener) handleEvent(ctx context.Context, routingKey string, body []byte) error {
	key, err := parseEventRoutingKey(routingKey)
	if err != nil {
		return err
	}

	if key.Action != EventActionInvalidate {
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"routingKey": routingKey,
		})
		return nil
	}

	switch key.ResourceType {
	case EventResourceTypeAll:
		l.useCase.InvalidateAllMembershipCache(ctx)
		l.logger.Info("_all_.message.invalidated", out.LogFields{
			"membership_cache": true,
		})

	case EventResourceTypeCustomer:
		customerID, err := strconv.ParseInt(key.ResourceID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid customer id in routing key %s: %w", routingKey, err)
		}
		l.useCase.InvalidateMembershipCache(ctx, customerID)
		l.logger.Info("customer.message.invalidated", out.LogFields{
			"customer_id": customerID,
		})

	case EventResourceTypeInvoice:
		var msg InvoiceEventMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal message: %w", err)
		}
		if msg.CustomerID == 0 {
			return fmt.Errorf("invoice message without customer_id: %s", routingKey)
		}
		l.useCase.InvalidateMembershipCache(ctx, msg.CustomerID)
		l.logger.Info("invoice.message.invalidated", out.LogFields{
			"invoice_id":  msg.InvoiceID,
			"customer_id": msg.CustomerID,
		})

	default:
		l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
			"resourceType": string(key.ResourceType),
		})
	}

	return nil
}
