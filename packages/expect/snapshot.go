package expect

// ToMatchSnapshot compares the subject against the snapshot stored for the
// current test, creating it when the run is in update mode. The optional
// label distinguishes multiple snapshots in one test. It requires a
// Reporter that implements SnapshotComparer (the runner's test context
// does, when snapshot storage is configured).
func (e *Expectation) ToMatchSnapshot(label ...string) *Result {
	const matcher = "toMatchSnapshot"

	sc, ok := e.reporter.(SnapshotComparer)
	if !ok {
		panicUsage(matcher, "reporter does not support snapshots")
	}
	lbl := ""
	if len(label) > 0 {
		lbl = label[0]
	}

	pass, message := sc.CompareSnapshot(lbl, e.subject)
	phrase := "to match the stored snapshot"
	if message != "" {
		phrase += ": " + message
	}
	return e.verify(matcher, pass, nil, phrase)
}
