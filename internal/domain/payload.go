package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString aceita tanto string quanto número no JSON de entrada.
// Clientes antigos enviam formulários (tudo texto); clientes JSON às vezes
// enviam números puros para quantity e price_per_item.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Trimmed devolve o valor sem espaços nas bordas.
func (f FlexString) Trimmed() string {
	return strings.TrimSpace(string(f))
}
