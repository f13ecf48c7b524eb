package checkout

import (
	"context"
	"sync"

	"foodbasket-be/internal/cart"
	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/pricing"

	"go.uber.org/zap"
)

// Step is a stage of the checkout sequence.
type Step string

const (
	StepDelivery     Step = "delivery"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// IsTerminal reports whether the flow can advance past this step.
func (s Step) IsTerminal() bool {
	return s == StepConfirmation
}

// View is what the flow asks the caller to present. Guards can preempt
// the step sequence entirely.
type View string

const (
	ViewCheckout      View = "checkout"
	ViewEmptyCart     View = "empty_cart"
	ViewRedirectLogin View = "redirect_login"
)

// Session is the authentication collaborator: it answers who the
// current user is and whether they are signed in at all.
type Session interface {
	UserID() (uint, bool)
}

// Flow sequences a user through delivery, payment and confirmation.
// It owns the step pointer, the user's selections, and the processing
// flag that keeps order placement single-flight.
type Flow struct {
	mu sync.Mutex

	cart    *cart.Store
	session Session

	step       Step
	processing bool

	address        *order.DeliveryAddress
	deliveryMethod *order.DeliveryMethod
	paymentMethod  *order.PaymentMethod
	notes          *string

	promoPercent float64
	loyalty      pricing.Loyalty

	completed *order.Order
}

// NewFlow starts a checkout at the delivery step.
func NewFlow(c *cart.Store, session Session) *Flow {
	return &Flow{
		cart:    c,
		session: session,
		step:    StepDelivery,
	}
}

// View evaluates the entry guards. An empty cart or a missing session
// short-circuits the flow, except on the confirmation step, which must
// stay reachable after the cart has been cleared by a successful
// placement.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepConfirmation {
		return ViewCheckout
	}
	if f.cart.ItemCount() == 0 {
		return ViewEmptyCart
	}
	if _, ok := f.session.UserID(); !ok {
		return ViewRedirectLogin
	}
	return ViewCheckout
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// Order returns the placed order once the flow has reached confirmation.
func (f *Flow) Order() *order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

func (f *Flow) SelectAddress(a order.DeliveryAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.address = &a
	return nil
}

func (f *Flow) SelectDeliveryMethod(m order.DeliveryMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.deliveryMethod = &m
	return nil
}

func (f *Flow) SelectPaymentMethod(m order.PaymentMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.paymentMethod = &m
	return nil
}

func (f *Flow) SetNotes(notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.notes = &notes
	return nil
}

// ApplyPromo sets the promo percentage used for quoting. The cap to
// 90% of subtotal is the pricing engine's business.
func (f *Flow) ApplyPromo(percent float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.promoPercent = percent
	return nil
}

// UseLoyaltyPoints toggles points redemption for quoting.
func (f *Flow) UseLoyaltyPoints(redeem bool, pointsAvailable int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	f.loyalty = pricing.Loyalty{Redeem: redeem, PointsAvailable: pointsAvailable}
	return nil
}

// Quote prices the current cart with the selected delivery fee, promo
// and loyalty redemption applied.
func (f *Flow) Quote() pricing.Breakdown {
	f.mu.Lock()
	promoPercent := f.promoPercent
	loyalty := f.loyalty
	fee := 0.0
	if f.deliveryMethod != nil {
		fee = f.deliveryMethod.Price
	}
	f.mu.Unlock()

	items := f.cart.Items()
	lines := make([]pricing.Line, 0, len(items))
	for _, li := range items {
		lines = append(lines, pricing.Line{
			UnitPrice: li.Product.Price,
			Quantity:  li.Quantity,
		})
	}

	return pricing.Quote(lines, fee, promoPercent, loyalty)
}

// Next advances the flow one step. Advancing out of the payment step
// places the order, the single side-effecting transition.
func (f *Flow) Next(ctx context.Context) error {
	f.mu.Lock()

	if f.processing {
		f.mu.Unlock()
		return ErrProcessing
	}

	switch f.step {
	case StepDelivery:
		defer f.mu.Unlock()

		if err := f.guardLocked(); err != nil {
			return err
		}
		if f.address == nil {
			return ErrMissingAddress
		}
		if f.deliveryMethod == nil {
			return ErrMissingDeliveryMethod
		}
		f.step = StepPayment
		return nil

	case StepPayment:
		f.mu.Unlock()
		return f.PlaceOrder(ctx)

	default:
		f.mu.Unlock()
		return ErrFlowComplete
	}
}

// Prev steps back from payment to delivery. Confirmation is terminal
// and delivery has nothing before it.
func (f *Flow) Prev() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return ErrProcessing
	}
	if f.step != StepPayment {
		return ErrInvalidTransition
	}

	f.step = StepDelivery
	return nil
}

// PlaceOrder runs the cart checkout against the order-creation
// collaborator. At most one placement is in flight: a second call while
// processing is refused, not queued. On failure the flow stays on the
// payment step with every selection intact, ready for a retry.
func (f *Flow) PlaceOrder(ctx context.Context) error {
	f.mu.Lock()

	if f.processing {
		f.mu.Unlock()
		return ErrProcessing
	}
	if f.step != StepPayment {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	if err := f.guardLocked(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.paymentMethod == nil {
		f.mu.Unlock()
		return ErrMissingPaymentMethod
	}

	userID, _ := f.session.UserID()
	address := *f.address
	method := *f.deliveryMethod
	payMethod := *f.paymentMethod
	notes := f.notes

	f.processing = true
	f.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", userID),
		zap.String("payment_method", payMethod.ID),
	)
	log.Info("placing order")

	placed, err := f.cart.Checkout(ctx, userID, address, method, payMethod, notes)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false

	if err != nil {
		log.Warn("order placement failed", zap.Error(err))
		return err
	}

	f.completed = placed
	f.step = StepConfirmation

	log.Info("order placed", zap.String("order_id", placed.ID))
	return nil
}

// guardLocked re-checks the entry guards; callers hold f.mu.
func (f *Flow) guardLocked() error {
	if f.cart.ItemCount() == 0 {
		return ErrCartEmpty
	}
	if _, ok := f.session.UserID(); !ok {
		return ErrNotAuthenticated
	}
	return nil
}
