package quote_booking

import "fmt"

// validateRequest проверяет ID и убирает повторы, сохраняя порядок выбора
func validateRequest(req *Request) (serviceIDs, optionIDs []int64, err error) {
	serviceIDs, err = uniquePositive("serviceIds", req.ServiceIDs)
	if err != nil {
		return nil, nil, err
	}
	optionIDs, err = uniquePositive("optionIds", req.OptionIDs)
	if err != nil {
		return nil, nil, err
	}
	return serviceIDs, optionIDs, nil
}

func uniquePositive(field string, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: %s must contain positive ids", ErrInvalidInput, field)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
