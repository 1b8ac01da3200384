package inventoryservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"stockkeeper/internal/domain"
)

const maxQuantity = domain.MaxQuantity

// errQuantityOverflow é devolvido pela regra de add quando a soma estoura maxQuantity.
var errQuantityOverflow = errors.New("quantity overflow")

// parseQuantity aceita apenas inteiros positivos: strings só com dígitos ASCII
// ou números JSON integrais.
func parseQuantity(raw interface{}) (int, bool) {
	var n int64
	switch v := raw.(type) {
	case string:
		if v == "" {
			return 0, false
		}
		for i := 0; i < len(v); i++ {
			if v[i] < '0' || v[i] > '9' {
				return 0, false
			}
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			n = parsed
		} else {
			f, err := v.Float64()
			if err != nil || f != math.Trunc(f) || f > maxQuantity || f < math.MinInt32 {
				return 0, false
			}
			n = int64(f)
		}
	case float64:
		if v != math.Trunc(v) || v > maxQuantity || v < math.MinInt32 {
			return 0, false
		}
		n = int64(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return 0, false
	}

	if n <= 0 || n > maxQuantity {
		return 0, false
	}
	return int(n), true
}

// adjustment devolve a regra executada sob o lock da linha.
func adjustment(op domain.Operation, requested int) domain.QuantityUpdate {
	return func(current int) (int, error) {
		switch op {
		case domain.OperationAdd:
			if current > maxQuantity-requested {
				return 0, errQuantityOverflow
			}
			return current + requested, nil
		case domain.OperationSubtract:
			if current < requested {
				return 0, domain.ErrInsufficientStock
			}
			return current - requested, nil
		default:
			return 0, fmt.Errorf("unsupported operation %q", op)
		}
	}
}

func failure(key domain.ItemKey, msg string) domain.AdjustmentOutcome {
	return domain.AdjustmentOutcome{
		ItemName:    key.ItemName,
		CompanyName: key.CompanyName,
		Status:      domain.StatusError,
		Message:     msg,
	}
}

func success(item domain.Item) domain.AdjustmentOutcome {
	q := item.Quantity
	return domain.AdjustmentOutcome{
		ItemName:    item.ItemName,
		CompanyName: item.CompanyName,
		Status:      domain.StatusSuccess,
		Message:     fmt.Sprintf(domain.MsgUpdatedFmt, q),
		NewQuantity: &q,
	}
}
