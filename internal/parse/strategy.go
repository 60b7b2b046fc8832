package parse

import "loteria-engine/internal/domain"

// extractor is the single capability every number strategy implements.
type extractor func(n Normalized, limit int, opts GenericOptions) []string

// strategyTable maps each game with a specialized layout to its strategy.
// Games not listed use the generic last/first-N heuristic. Adding a game
// means adding a row, not a branch.
var strategyTable = map[domain.Country]extractor{
	domain.CostaRica: extractCostaRicaFilled,
}

// ExtractNumbers runs the strategy selected by the classification and caps
// the output at the game's expected prize count.
func ExtractNumbers(country domain.Country, n Normalized, opts GenericOptions) []string {
	limit := domain.ExpectedNumbers(country)
	if limit == 0 {
		return nil
	}
	ex := strategyTable[country]
	if ex == nil {
		ex = extractGenericStrategy
	}
	nums := ex(n, limit, opts)
	if len(nums) > limit {
		nums = nums[:limit]
	}
	return nums
}

func extractGenericStrategy(n Normalized, limit int, opts GenericOptions) []string {
	return ExtractGeneric(n.Cleaned, limit, opts)
}

// extractCostaRicaFilled runs the anchored scan and, on a short result,
// tops up from the generic strategy: anchored tokens are kept, generic
// tokens are appended in order, duplicates skipped, until the quota.
func extractCostaRicaFilled(n Normalized, limit int, opts GenericOptions) []string {
	nums, short := ExtractCostaRica(n.Lines)
	if !short {
		return nums
	}
	for _, g := range ExtractGeneric(n.Cleaned, limit, opts) {
		if len(nums) >= limit {
			break
		}
		if contains(nums, g) {
			continue
		}
		nums = append(nums, g)
	}
	return nums
}
