package sim

// Sync copies every entity's body transform onto its proxy. Call it after the
// world has been stepped and before the frame is drawn.
func Sync(r *Registry) {
	r.ForEach(syncEntity)
}

func syncEntity(body *Body, proxy Proxy) {
	x, y := body.Position()
	proxy.SetTransform(x, y, body.Angle())
}
