package skills

// Gap is the comparison of a user's skills against a job's required skills.
// Matched and Missing use the job's spelling of each skill.
type Gap struct {
	Matched         []string
	Missing         []string
	TotalRequired   int
	MatchPercentage float64
}

// Analyze compares user skills against job skills under normalization.
func (n *Normalizer) Analyze(userSkills, jobSkills []string) Gap {
	user := n.Set(userSkills)
	job := n.Set(jobSkills)

	matched := job.Intersect(user)
	missing := job.Difference(user)

	gap := Gap{
		Matched:       job.Displays(matched),
		Missing:       job.Displays(missing),
		TotalRequired: job.Len(),
	}
	if gap.TotalRequired > 0 {
		gap.MatchPercentage = float64(len(matched)) / float64(gap.TotalRequired) * 100
	}
	return gap
}

// Analyze compares skills with the default normalizer.
func Analyze(userSkills, jobSkills []string) Gap {
	return defaultNormalizer.Analyze(userSkills, jobSkills)
}
