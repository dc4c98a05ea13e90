package apitests

func DoPingTests(t *T) {
	t.RequirePing()
}
