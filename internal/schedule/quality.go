package schedule

import "fmt"

// MapQuality converts a raw quiz score into an SM-2 quality grade on the
// 0-5 scale, using fixed percentage thresholds applied highest-first.
func MapQuality(correct, total int) (int, error) {
	if total <= 0 {
		return 0, fmt.Errorf("%w: total questions %d, must be positive", ErrInvalidInput, total)
	}
	if correct < 0 || correct > total {
		return 0, fmt.Errorf("%w: correct count %d out of range 0..%d", ErrInvalidInput, correct, total)
	}

	percentage := float64(correct) / float64(total) * 100

	switch {
	case percentage >= 90:
		return 5, nil
	case percentage >= 80:
		return 4, nil
	case percentage >= 70:
		return 3, nil
	case percentage >= 60:
		return 2, nil
	case percentage >= 50:
		return 1, nil
	default:
		return 0, nil
	}
}
