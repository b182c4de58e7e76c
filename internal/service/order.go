package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/calculator"
	"blinds-orders/internal/metrics"
	"blinds-orders/internal/models"
	"blinds-orders/internal/repository"
	"blinds-orders/internal/store"
	"blinds-orders/internal/workflow"
)

const (
	sourceConsole = "console"
	sourceKafka   = "kafka"
)

func humanizeValidationErrors(errs validator.ValidationErrors) string {
	var b strings.Builder
	for _, fe := range errs {
		if fe.Param() != "" {
			fmt.Fprintf(&b, "%s: %s=%s; ", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			fmt.Fprintf(&b, "%s: %s; ", fe.Namespace(), fe.Tag())
		}
	}
	s := b.String()
	if len(s) > 2 {
		s = s[:len(s)-2]
	}
	return s
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func (s *Service) validate(v any) error {
	if err := s.v.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return invalid("%s", humanizeValidationErrors(verrs))
		}
		return invalid("%v", err)
	}
	return nil
}

func checkDimensions(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return invalid("width must be a positive number")
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return invalid("height must be a positive number")
	}
	return nil
}

func checkActor(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return invalid("actor is required")
	}
	return nil
}

// checkTypeFields enforces the per-type field rules on a fully applied record.
func checkTypeFields(o models.Order) error {
	switch o.OrderType {
	case models.OrderTypeWooden:
		if o.HasNormalFields() {
			return invalid("fabric_code and image_url are not allowed on wooden orders")
		}
		if o.BaseSize == nil {
			return invalid("base_size is required for wooden orders")
		}
		if o.OperatingSide == nil {
			return invalid("operating_side is required for wooden orders")
		}
	case models.OrderTypeNormal:
		if o.BaseSize != nil || o.WoodenColorCode != nil || o.OperatingSide != nil {
			return invalid("base_size, wooden_color_code and operating_side are only allowed on wooden orders")
		}
	default:
		return invalid("unknown order type %q", o.OrderType)
	}
	return nil
}

// optionalText maps a blank value to absent so optional fields can be cleared.
func optionalText(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}

// clearBlank nils every blank optional text field in place.
func clearBlank(fields ...**string) {
	for _, f := range fields {
		*f = optionalText(*f)
	}
}

func (s *Service) write(ctx context.Context, event string, o models.Order) error {
	if err := s.records.Replace(ctx, event, o); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *Service) CreateOrder(ctx context.Context, d models.Draft, actor string) (Created, error) {
	if err := checkActor(actor); err != nil {
		return Created{}, err
	}
	clearBlank(&d.CustomerEmail, &d.CustomerPhone, &d.FabricCode, &d.ImageURL, &d.WoodenColorCode, &d.Notes)
	if err := s.validate(d); err != nil {
		return Created{}, err
	}
	if err := checkDimensions(d.Width, d.Height); err != nil {
		return Created{}, err
	}

	now := s.now()
	o := models.Order{
		ID:              uuid.NewString(),
		OrderType:       d.OrderType,
		Status:          models.StatusPending,
		CustomerName:    strings.TrimSpace(d.CustomerName),
		CustomerEmail:   d.CustomerEmail,
		CustomerPhone:   d.CustomerPhone,
		Width:           d.Width,
		Height:          d.Height,
		Quantity:        d.Quantity,
		FabricCode:      d.FabricCode,
		ImageURL:        d.ImageURL,
		BaseSize:        d.BaseSize,
		WoodenColorCode: d.WoodenColorCode,
		OperatingSide:   d.OperatingSide,
		Notes:           d.Notes,
		CreatedAt:       now,
		CreatedBy:       actor,
		UpdatedAt:       now,
		UpdatedBy:       actor,
	}
	if o.CustomerName == "" {
		return Created{}, invalid("customer_name is required")
	}
	if err := checkTypeFields(o); err != nil {
		return Created{}, err
	}
	o, ok := calculator.Apply(o)
	if !ok {
		return Created{}, invalid("cannot derive specification for %s order", o.OrderType)
	}

	alloc := s.alloc.Allocate(ctx)
	o.OrderNumber = alloc.Number

	if err := s.write(ctx, models.EventCreated, o); err != nil {
		return Created{}, err
	}
	s.metrics.Created(alloc.Fallback)

	out := Created{Order: o}
	if alloc.Fallback {
		out.Warning = fmt.Sprintf("order number %s was generated from the clock because existing orders could not be read", alloc.Number)
	}
	logrus.WithFields(logrus.Fields{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"order_type":   o.OrderType,
		"actor":        actor,
	}).Info("order created")
	return out, nil
}

func (s *Service) EditOrder(ctx context.Context, id string, e models.OrderEdit, actor string) (models.Order, error) {
	if err := checkActor(actor); err != nil {
		return models.Order{}, err
	}
	// blanks clear a field, so they skip format checks
	check := e
	clearBlank(&check.CustomerEmail, &check.CustomerPhone, &check.FabricCode, &check.ImageURL, &check.WoodenColorCode, &check.Notes)
	if err := s.validate(check); err != nil {
		return models.Order{}, err
	}
	cur, err := s.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if e.OrderType != nil && *e.OrderType != cur.OrderType {
		return models.Order{}, fmt.Errorf("%w: order_type", ErrImmutableField)
	}
	if e.OrderNumber != nil && *e.OrderNumber != cur.OrderNumber {
		return models.Order{}, fmt.Errorf("%w: order_number", ErrImmutableField)
	}

	o := cur.Clone()
	if e.CustomerName != nil {
		o.CustomerName = strings.TrimSpace(*e.CustomerName)
	}
	if e.CustomerEmail != nil {
		o.CustomerEmail = optionalText(e.CustomerEmail)
	}
	if e.CustomerPhone != nil {
		o.CustomerPhone = optionalText(e.CustomerPhone)
	}
	if e.Width != nil {
		o.Width = *e.Width
	}
	if e.Height != nil {
		o.Height = *e.Height
	}
	if e.Quantity != nil {
		o.Quantity = *e.Quantity
	}
	if e.FabricCode != nil {
		o.FabricCode = optionalText(e.FabricCode)
	}
	if e.ImageURL != nil {
		o.ImageURL = optionalText(e.ImageURL)
	}
	if e.BaseSize != nil {
		o.BaseSize = e.BaseSize
	}
	if e.WoodenColorCode != nil {
		o.WoodenColorCode = optionalText(e.WoodenColorCode)
	}
	if e.OperatingSide != nil {
		o.OperatingSide = e.OperatingSide
	}
	if e.Notes != nil {
		o.Notes = optionalText(e.Notes)
	}

	if o.CustomerName == "" {
		return models.Order{}, invalid("customer_name is required")
	}
	if err := checkDimensions(o.Width, o.Height); err != nil {
		return models.Order{}, err
	}
	if err := checkTypeFields(o); err != nil {
		return models.Order{}, err
	}
	if o.OrderType == models.OrderTypeWooden && (e.Width != nil || e.Height != nil || e.BaseSize != nil || !o.HasDerivedFields()) {
		o, _ = calculator.Apply(o)
	}

	workflow.Stamp(&o, actor, s.now())
	if err := s.write(ctx, models.EventUpdated, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Service) AdvanceOrder(ctx context.Context, id, actor string) (models.Order, bool, error) {
	if err := checkActor(actor); err != nil {
		return models.Order{}, false, err
	}
	cur, err := s.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, false, err
	}
	next, ok := workflow.Advance(cur, actor, s.now())
	if !ok {
		return cur, false, nil
	}
	if err := s.write(ctx, models.EventAdvanced, next); err != nil {
		return models.Order{}, false, err
	}
	s.metrics.Transition(metrics.SourceAdvance)
	logrus.WithFields(logrus.Fields{
		"order_id":     next.ID,
		"order_number": next.OrderNumber,
		"from":         cur.Status,
		"to":           next.Status,
		"actor":        actor,
	}).Debug("order advanced")
	return next, true, nil
}

func (s *Service) SetOrderStatus(ctx context.Context, id string, status models.Status, actor string) (models.Order, error) {
	return s.setStatus(ctx, id, status, actor, sourceConsole)
}

func (s *Service) setStatus(ctx context.Context, id string, status models.Status, actor, source string) (models.Order, error) {
	if err := checkActor(actor); err != nil {
		return models.Order{}, err
	}
	if !status.Valid() {
		return models.Order{}, invalid("unknown status %q", status)
	}
	cur, err := s.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	next, err := workflow.SetStatus(cur, status, actor, s.now())
	if err != nil {
		return models.Order{}, invalid("%v", err)
	}
	if err := s.write(ctx, models.EventStatusSet, next); err != nil {
		return models.Order{}, err
	}
	s.metrics.Transition(metrics.SourceDirect)
	logrus.WithFields(logrus.Fields{
		"order_id":     next.ID,
		"order_number": next.OrderNumber,
		"from":         cur.Status,
		"to":           next.Status,
		"actor":        actor,
		"source":       source,
	}).Info("order status set directly")
	return next, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (models.Order, error) {
	o, err := s.records.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return o, err
}

func (s *Service) ListOrders(context.Context) []models.Order {
	return s.records.List()
}

// ProductionQueue lists every order the floor still has to work on.
func (s *Service) ProductionQueue(context.Context) []models.Order {
	all := s.records.List()
	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status != models.StatusCompleted {
			out = append(out, o)
		}
	}
	return out
}

func (s *Service) PreviewWoodenSpec(width, height float64, base models.BaseSize) (models.WoodenSpec, error) {
	if err := checkDimensions(width, height); err != nil {
		return models.WoodenSpec{}, err
	}
	if !base.Valid() {
		return models.WoodenSpec{}, invalid("base_size must be one of 35mm, 50mm")
	}
	return calculator.DeriveWoodenSpec(width, height, base), nil
}

// Subscribe streams the whole collection: once now and again after every write.
func (s *Service) Subscribe(ctx context.Context) <-chan store.Snapshot {
	return s.records.Subscribe(ctx)
}

func (s *Service) WarmUp(ctx context.Context) error {
	return s.records.Warm(ctx)
}
