package metrics

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrLengthMismatch = errors.New("inputs have different lengths")
	ErrSingleClass    = errors.New("only one class present in y_true")
)

// Provider computes scalar classification scores. ClfMetrics depends on it
// rather than on a concrete numeric backend.
type Provider interface {
	Accuracy(yTrue, yPred []int) (float64, error)
	BalancedAccuracy(yTrue, yPred []int) (float64, error)
	Recall(yTrue, yPred []int) (float64, error)
	Precision(yTrue, yPred []int) (float64, error)
	F1(yTrue, yPred []int) (float64, error)
	ROCAUC(yTrue []int, yScore []float64) (float64, error)
}

// Confusion is a binary confusion matrix.
type Confusion struct {
	TP, FP, TN, FN int
}

// NewConfusion tallies yTrue against yPred. Labels equal to pos are
// positive, everything else negative.
func NewConfusion(yTrue, yPred []int, pos int) (Confusion, error) {
	var c Confusion
	if err := checkLengths(len(yTrue), len(yPred)); err != nil {
		return c, err
	}

	for i := range yTrue {
		actual, predicted := yTrue[i] == pos, yPred[i] == pos
		switch {
		case actual && predicted:
			c.TP++
		case !actual && predicted:
			c.FP++
		case !actual && !predicted:
			c.TN++
		default:
			c.FN++
		}
	}
	return c, nil
}

// Total returns the number of observations.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// BinaryProvider scores binary classifiers from the confusion matrix.
// Undefined ratios (zero denominators) score 0.
type BinaryProvider struct {
	PosLabel int
}

// DefaultProvider treats 1 as the positive class.
var DefaultProvider Provider = BinaryProvider{PosLabel: 1}

func (p BinaryProvider) Accuracy(yTrue, yPred []int) (float64, error) {
	c, err := NewConfusion(yTrue, yPred, p.PosLabel)
	if err != nil {
		return 0, err
	}
	return ratio(c.TP+c.TN, c.Total()), nil
}

// BalancedAccuracy averages the recall of every class present in yTrue.
func (p BinaryProvider) BalancedAccuracy(yTrue, yPred []int) (float64, error) {
	c, err := NewConfusion(yTrue, yPred, p.PosLabel)
	if err != nil {
		return 0, err
	}

	var sum float64
	classes := 0
	if c.TP+c.FN > 0 {
		sum += ratio(c.TP, c.TP+c.FN)
		classes++
	}
	if c.TN+c.FP > 0 {
		sum += ratio(c.TN, c.TN+c.FP)
		classes++
	}
	return sum / float64(classes), nil
}

func (p BinaryProvider) Recall(yTrue, yPred []int) (float64, error) {
	c, err := NewConfusion(yTrue, yPred, p.PosLabel)
	if err != nil {
		return 0, err
	}
	return ratio(c.TP, c.TP+c.FN), nil
}

func (p BinaryProvider) Precision(yTrue, yPred []int) (float64, error) {
	c, err := NewConfusion(yTrue, yPred, p.PosLabel)
	if err != nil {
		return 0, err
	}
	return ratio(c.TP, c.TP+c.FP), nil
}

func (p BinaryProvider) F1(yTrue, yPred []int) (float64, error) {
	c, err := NewConfusion(yTrue, yPred, p.PosLabel)
	if err != nil {
		return 0, err
	}
	return ratio(2*c.TP, 2*c.TP+c.FP+c.FN), nil
}

// ROCAUC is the probability that a random positive scores above a random
// negative, obtained from the Mann-Whitney U statistic of the two score sets.
func (p BinaryProvider) ROCAUC(yTrue []int, yScore []float64) (float64, error) {
	if err := checkLengths(len(yTrue), len(yScore)); err != nil {
		return 0, err
	}

	var pos, neg []float64
	for i, label := range yTrue {
		if label == p.PosLabel {
			pos = append(pos, yScore[i])
		} else {
			neg = append(neg, yScore[i])
		}
	}
	if len(pos) == 0 || len(neg) == 0 {
		return 0, ErrSingleClass
	}

	res, err := stats.MannWhitneyUTest(pos, neg, stats.LocationDiffers)
	if err != nil {
		if errors.Is(err, stats.ErrSamplesEqual) {
			return 0.5, nil
		}
		return 0, errors.Wrap(err, "mann-whitney u test")
	}
	return res.U / float64(res.N1*res.N2), nil
}

func checkLengths(a, b int) error {
	if a == 0 || b == 0 {
		return ErrEmptyInput
	}
	if a != b {
		return errors.Wrapf(ErrLengthMismatch, "%d != %d", a, b)
	}
	return nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
