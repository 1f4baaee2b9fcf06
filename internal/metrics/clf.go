package metrics

import "github.com/pkg/errors"

// Metric names used as keys of the ClfMetrics result. The precision key keeps
// the spelling existing consumers of this map rely on.
const (
	KeyAccuracy         = "Accuracy"
	KeyBalancedAccuracy = "Balanced Accuracy"
	KeyRecall           = "Recall"
	KeyPrecision        = "Precison"
	KeyF1               = "F1"
	KeyROCAUC           = "ROC_AUC"
)

// Keys lists the metric names in presentation order.
var Keys = []string{KeyAccuracy, KeyBalancedAccuracy, KeyRecall, KeyPrecision, KeyF1, KeyROCAUC}

// ClfMetrics evaluates a binary classifier with DefaultProvider. yProba holds
// the positive-class scores; when nil, ROC_AUC is omitted.
func ClfMetrics(yTrue, yPred []int, yProba []float64) (map[string]float64, error) {
	return Evaluate(DefaultProvider, yTrue, yPred, yProba)
}

// Evaluate is ClfMetrics with an explicit Provider.
func Evaluate(p Provider, yTrue, yPred []int, yProba []float64) (map[string]float64, error) {
	scores := []struct {
		key string
		fn  func([]int, []int) (float64, error)
	}{
		{KeyAccuracy, p.Accuracy},
		{KeyBalancedAccuracy, p.BalancedAccuracy},
		{KeyRecall, p.Recall},
		{KeyPrecision, p.Precision},
		{KeyF1, p.F1},
	}

	result := make(map[string]float64, len(Keys))
	for _, s := range scores {
		v, err := s.fn(yTrue, yPred)
		if err != nil {
			return nil, errors.Wrap(err, s.key)
		}
		result[s.key] = v
	}

	if yProba != nil {
		v, err := p.ROCAUC(yTrue, yProba)
		if err != nil {
			return nil, errors.Wrap(err, KeyROCAUC)
		}
		result[KeyROCAUC] = v
	}
	return result, nil
}
