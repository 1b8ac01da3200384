package inventoryservice

import (
	"context"
	"sort"

	"stockkeeper/internal/domain"
)

// rejection é uma entrada ofensora do lote, com sua posição original.
type rejection struct {
	index  int
	detail domain.MissingItemDetail
}

// parseBatch converte as entradas cruas do wire em AdjustmentRequests.
// Entradas que não são objetos, ou sem item_name/company_name textuais e não
// vazios, são defeitos estruturais e guardam o valor original de cada campo.
func parseBatch(entries []interface{}) ([]domain.AdjustmentRequest, []rejection) {
	requests := make([]domain.AdjustmentRequest, 0, len(entries))
	var defects []rejection

	for i, entry := range entries {
		fields, _ := entry.(map[string]interface{})

		itemName, okItem := fields["item_name"].(string)
		companyName, okCompany := fields["company_name"].(string)
		if !okItem || !okCompany || itemName == "" || companyName == "" {
			defects = append(defects, rejection{index: i, detail: domain.MissingItemDetail{
				ItemName:    fields["item_name"],
				CompanyName: fields["company_name"],
				Error:       domain.MsgMissingKey,
			}})
			continue
		}

		op, _ := fields["type"].(string)
		requests = append(requests, domain.AdjustmentRequest{
			Index:       i,
			Key:         domain.ItemKey{ItemName: itemName, CompanyName: companyName},
			RawQuantity: fields["quantity"],
			Operation:   domain.Operation(op),
		})
	}
	return requests, defects
}

// precheck confirma que todas as chaves do lote existem no catálogo antes de
// qualquer escrita. Se algo falta, devolve todas as entradas ofensoras na
// ordem do lote. Um erro de armazenamento interrompe a verificação.
func (s *Service) precheck(ctx context.Context, entries []interface{}) ([]domain.AdjustmentRequest, []domain.MissingItemDetail, error) {
	requests, rejected := parseBatch(entries)

	exists := make(map[domain.ItemKey]bool, len(requests))
	for _, req := range requests {
		found, seen := exists[req.Key]
		if !seen {
			var err error
			if found, err = s.store.Exists(ctx, req.Key); err != nil {
				return nil, nil, err
			}
			exists[req.Key] = found
		}
		if !found {
			rejected = append(rejected, rejection{index: req.Index, detail: domain.MissingItemDetail{
				ItemName:    req.Key.ItemName,
				CompanyName: req.Key.CompanyName,
				Error:       domain.MsgItemNotFound,
			}})
		}
	}

	if len(rejected) == 0 {
		return requests, nil, nil
	}

	sort.SliceStable(rejected, func(i, j int) bool { return rejected[i].index < rejected[j].index })
	details := make([]domain.MissingItemDetail, len(rejected))
	for i, r := range rejected {
		details[i] = r.detail
	}
	return nil, details, nil
}
