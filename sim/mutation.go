package sim

// MutationRequest describes a single state change to apply on a render
// goroutine: set one shader parameter of one visual's material. The
// request is immutable; build it on the control goroutine, apply it
// from a pre-render hook.
type MutationRequest struct {
	VisualName string
	Param      string
	Stage      ShaderStage
	Value      string
}

// ApplyMutation resolves the request's visual and sets the parameter.
// Call only from a render goroutine (via RunBeforeRender); a missing
// visual is a hard lookup failure.
func (s *Scene) ApplyMutation(req MutationRequest) error {
	v, err := s.VisualByName(req.VisualName)
	if err != nil {
		return err
	}
	return v.Material().SetShaderParam(req.Param, req.Stage, req.Value)
}
