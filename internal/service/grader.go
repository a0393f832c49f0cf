package service

// Percent 已覆盖问题占比（0-100）；total 为 0 时返回 0
func Percent(missed, total int) float64 {
	if total <= 0 {
		return 0
	}
	answered := total - missed
	return float64(answered) / float64(total) * 100
}

// Grade 按覆盖率给出等级，阈值为含下界。没有任何问题时返回 F。
func Grade(missed, total int) string {
	if total <= 0 {
		return "F"
	}
	return gradeForPercent(Percent(missed, total))
}

func gradeForPercent(p float64) string {
	switch {
	case p >= 90:
		return "A"
	case p >= 80:
		return "B"
	case p >= 70:
		return "C"
	case p >= 60:
		return "D"
	default:
		return "F"
	}
}
