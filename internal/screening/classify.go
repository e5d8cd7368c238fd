package screening

// Classify maps one key to its outcome. Precedence is fixed: an IMNEO
// match always wins over an X-CLIENT match, and the mode only decides how
// an X-CLIENT match is reported. Pure function over the immutable groups.
func Classify(k Key, mode Mode, groups Groups) Outcome {
	if groups.Imneo.Matches(k) {
		return Outcome{Status: StatusImneo, Color: ColorRed}
	}

	if groups.XClient.Matches(k) {
		if mode == ModeCandidate {
			return Outcome{Status: StatusXClientCandidate, Color: ColorRed}
		}
		return Outcome{Status: StatusXClientRelation, Color: ColorYellow}
	}

	return Outcome{Status: StatusSafe, Color: ColorWhite}
}
