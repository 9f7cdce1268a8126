package inventory

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/lumina-inventario/internal/domain"
	"github.com/jhoicas/lumina-inventario/internal/domain/entity"
	"github.com/jhoicas/lumina-inventario/internal/domain/repository"
	"github.com/jhoicas/lumina-inventario/internal/domain/stock"
)

// Direction sentido del movimiento.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Action tipo de acción guardado en el historial.
func (d Direction) Action() string {
	if d == DirectionOut {
		return entity.ActionExit
	}
	return entity.ActionEntry
}

// DirectionFromAction inverso de Action; false si a no es Entrada ni Salida.
func DirectionFromAction(a string) (Direction, bool) {
	switch a {
	case entity.ActionEntry:
		return DirectionIn, true
	case entity.ActionExit:
		return DirectionOut, true
	}
	return "", false
}

// minDestinationLength longitud mínima del destino de una salida.
const minDestinationLength = 2

// RecordInput solicitud de movimiento. Detail es el número de factura en entradas
// (opcional) y el destino en salidas (obligatorio).
type RecordInput struct {
	ProductID int64
	Direction Direction
	Quantity  int
	Detail    string
	UserName  string
}

// RecordResult producto actualizado y registro creado, para que el llamador no vuelva a leer.
type RecordResult struct {
	Product  *entity.Product
	Movement *entity.MovementRecord
	State    State
}

// MovementRecorder actualiza el stock y agrega el registro de historial como una sola operación.
// Con un TxRunner atómico ambos pasos van en la misma transacción; si no, el paso de stock
// se compensa cuando falla la inserción del historial.
type MovementRecorder struct {
	tx        repository.TxRunner
	movements repository.MovementRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewMovementRecorder construye el registrador.
func NewMovementRecorder(tx repository.TxRunner, movements repository.MovementRepository, log zerolog.Logger) *MovementRecorder {
	return &MovementRecorder{
		tx:        tx,
		movements: movements,
		log:       log.With().Str("component", "movement_recorder").Logger(),
		now:       time.Now,
	}
}

// Validate revisa la solicitud sin tocar el almacenamiento.
func (in RecordInput) Validate() error {
	fields := map[string]string{}
	if in.ProductID <= 0 {
		fields["product_id"] = "requerido"
	}
	if in.Direction != DirectionIn && in.Direction != DirectionOut {
		fields["direction"] = "debe ser in u out"
	}
	if in.Quantity <= 0 {
		fields["quantity"] = "debe ser un entero positivo"
	}
	if in.Direction == DirectionOut && utf8.RuneCountInString(strings.TrimSpace(in.Detail)) < minDestinationLength {
		fields["destination"] = "debe tener al menos 2 caracteres"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Record ejecuta el movimiento. Errores posibles: ValidationError, ErrNotFound,
// InsufficientStockError (siempre antes de escribir), StorageError y PartialFailureError.
func (r *MovementRecorder) Record(ctx context.Context, in RecordInput) (*RecordResult, error) {
	log := r.log.With().Int64("product_id", in.ProductID).Str("direction", string(in.Direction)).Logger()
	state := StateValidating

	if err := in.Validate(); err != nil {
		return &RecordResult{State: StateRejected}, err
	}

	var (
		product  *entity.Product
		movement *entity.MovementRecord
	)
	err := r.tx.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return &domain.StorageError{Op: "leer producto", Err: err}
		}
		if in.Direction == DirectionOut && in.Quantity > p.Stock {
			return &domain.InsufficientStockError{Available: p.Stock, Requested: in.Quantity}
		}

		prevStock, prevStatus := p.Stock, p.Status
		newStock := p.Stock + in.Quantity
		if in.Direction == DirectionOut {
			newStock = p.Stock - in.Quantity
		}
		newStatus := stock.Classify(newStock, p.MinStock, p.MaxStock)

		state = StateMutating
		if err := repos.Products.UpdateStock(ctx, p.ID, newStock, newStatus); err != nil {
			return &domain.StorageError{Op: "actualizar stock", Err: err}
		}
		state = StatePersisted
		p.Stock, p.Status = newStock, newStatus

		state = StateRecordingHistory
		m := NewRecord(p, in.Direction, in.Quantity, in.Detail, in.UserName, r.now())
		if err := repos.Movements.Append(ctx, m); err != nil {
			if r.tx.Atomic() {
				return &domain.StorageError{Op: "registrar movimiento", Err: err}
			}
			return r.compensate(ctx, repos, p.ID, prevStock, prevStatus, err, log)
		}
		product, movement = p, m
		return nil
	})
	if err != nil {
		err = asDomainError(err)
		final := TerminalState(err)
		if final == StatePartialFailure {
			log.Error().Err(err).Msg("movimiento aplicado parcialmente; revisar stock manualmente")
		} else {
			log.Debug().Err(err).Str("last_state", string(state)).Str("state", string(final)).Msg("movimiento no registrado")
		}
		return &RecordResult{State: final}, err
	}

	log.Info().Int("quantity", in.Quantity).Int("stock", product.Stock).Msg("movimiento registrado")
	return &RecordResult{Product: product, Movement: movement, State: StateComplete}, nil
}

// compensate deshace el paso de stock tras fallar el historial.
func (r *MovementRecorder) compensate(
	ctx context.Context,
	repos repository.TxRepos,
	productID int64,
	prevStock int,
	prevStatus stock.Status,
	cause error,
	log zerolog.Logger,
) error {
	if rbErr := repos.Products.UpdateStock(ctx, productID, prevStock, prevStatus); rbErr != nil {
		return &domain.PartialFailureError{Op: "registrar movimiento", Cause: cause, RollbackErr: rbErr}
	}
	log.Warn().Err(cause).Msg("historial no registrado; stock revertido")
	return &domain.StorageError{Op: "registrar movimiento", Err: cause}
}

// NewRecord arma el registro de historial de un movimiento sobre p con fecha y hora de now.
// UserName vacío se registra como "Sistema".
func NewRecord(p *entity.Product, d Direction, quantity int, detail, userName string, now time.Time) *entity.MovementRecord {
	m := &entity.MovementRecord{
		ProductID:   p.ID,
		ProductName: p.Name,
		Action:      d.Action(),
		Quantity:    quantity,
		Date:        now.Format(entity.DateLayout),
		Time:        now.Format(entity.TimeLayout),
		UserName:    strings.TrimSpace(userName),
		CreatedAt:   now,
	}
	if m.UserName == "" {
		m.UserName = entity.DefaultUserName
	}
	detail = strings.TrimSpace(detail)
	if d == DirectionOut {
		m.Details.Destination = detail
	} else {
		m.Details.InvoiceNumber = detail
	}
	return m
}

// DefaultRecentLimit movimientos recientes mostrados por producto.
const DefaultRecentLimit = 5

// Recent últimos movimientos de un producto en un sentido, del más nuevo al más antiguo.
func (r *MovementRecorder) Recent(ctx context.Context, productID int64, d Direction, limit int) ([]*entity.MovementRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, _, err := r.movements.List(ctx, repository.MovementFilter{
		Action:    d.Action(),
		ProductID: productID,
		Window:    repository.Window{Limit: limit},
	})
	if err != nil {
		return nil, &domain.StorageError{Op: "leer movimientos recientes", Err: err}
	}
	return rows, nil
}

// asDomainError deja pasar los errores tipados y envuelve el resto (begin/commit) como StorageError.
func asDomainError(err error) error {
	var (
		ve *domain.ValidationError
		ie *domain.InsufficientStockError
		se *domain.StorageError
		pe *domain.PartialFailureError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &ie), errors.As(err, &se), errors.As(err, &pe),
		errors.Is(err, domain.ErrNotFound):
		return err
	}
	return &domain.StorageError{Op: "transacción", Err: err}
}
