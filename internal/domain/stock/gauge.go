package stock

import "github.com/shopspring/decimal"

// Tier color de la barra de nivel; independiente de Status.
type Tier string

const (
	TierCritical      Tier = "critical"
	TierWarning       Tier = "warning"
	TierNormal        Tier = "normal"
	TierInformational Tier = "informational"
)

// warningBand fracción del rango por encima del mínimo que todavía se marca como advertencia.
var warningBand = decimal.RequireFromString("0.3")

var hundred = decimal.NewFromInt(100)

// Level resultado del medidor de nivel de stock.
type Level struct {
	Percent float64 `json:"percent"` // [0, 100]
	Tier    Tier    `json:"tier"`
}

// Gauge calcula el porcentaje de la barra y su color.
//
// Con max <= min el rango es degenerado: 100 si hay stock, 0 si no.
// En otro caso (stock-min)/(max-min)*100 acotado a [0, 100].
// Los umbrales del color difieren de Classify: existe una banda de advertencia del 30%
// por encima del mínimo, así que ambos resultados pueden discrepar.
func Gauge(stock, minStock, maxStock int) Level {
	return Level{
		Percent: percent(stock, minStock, maxStock),
		Tier:    tier(stock, minStock, maxStock),
	}
}

func percent(stock, minStock, maxStock int) float64 {
	if maxStock <= minStock {
		if stock > 0 {
			return 100
		}
		return 0
	}
	num := decimal.NewFromInt(int64(stock - minStock))
	den := decimal.NewFromInt(int64(maxStock - minStock))
	p := num.Mul(hundred).Div(den)
	if p.LessThan(decimal.Zero) {
		p = decimal.Zero
	}
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return p.InexactFloat64()
}

func tier(stock, minStock, maxStock int) Tier {
	s := decimal.NewFromInt(int64(stock))
	threshold := decimal.NewFromInt(int64(minStock)).
		Add(warningBand.Mul(decimal.NewFromInt(int64(maxStock - minStock))))
	switch {
	case stock == 0:
		return TierCritical
	case stock <= minStock:
		return TierCritical
	case s.LessThanOrEqual(threshold):
		return TierWarning
	case stock > maxStock:
		return TierInformational
	default:
		return TierNormal
	}
}

// Indicator texto del indicador visual de las pantallas de entrada y salida.
func (l Level) Indicator() string {
	switch l.Tier {
	case TierCritical:
		return "Stock Crítico"
	case TierWarning:
		return "Stock Bajo"
	case TierInformational:
		return "Sobre Stock"
	default:
		return "Stock Normal"
	}
}

// Rounded porcentaje redondeado al entero más cercano, como se muestra en la barra.
func (l Level) Rounded() int {
	return int(decimal.NewFromFloat(l.Percent).Round(0).IntPart())
}
