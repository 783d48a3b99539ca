package smoke

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Generated dish constants.
const (
	namePrefix      = "smoke-"
	minPrecio       = 1.0
	precioRange     = 49.0
	precioCents     = 4900
	patchMultiplier = 1.5
	centsPerUnit    = 100
)
