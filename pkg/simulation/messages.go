package simulation

import (
	"fmt"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// Commands understood by WorldActor, sent as wrapperspb.StringValue.
const (
	CmdContinue = "continue"
	CmdRestart  = "restart"
)

// Tick field names of the structpb envelope.
const (
	fieldDelta  = "dt"
	fieldSteerX = "steerX"
	fieldSteerY = "steerY"
	fieldBoost  = "boost"
	fieldExit   = "exit"
)

// NewTick packs one host tick (elapsed seconds plus sampled input) for the world actor.
func NewTick(dt float64, in Input) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldDelta:  structpb.NewNumberValue(dt),
		fieldSteerX: structpb.NewNumberValue(in.Steer.X),
		fieldSteerY: structpb.NewNumberValue(in.Steer.Y),
		fieldBoost:  structpb.NewBoolValue(in.Boost),
		fieldExit:   structpb.NewBoolValue(in.Exit),
	}}
}

// DecodeTick is the inverse of NewTick. Only dt is mandatory; missing input fields are zero.
func DecodeTick(s *structpb.Struct) (float64, Input, error) {
	f := s.GetFields()
	dt, ok := f[fieldDelta]
	if !ok {
		return 0, Input{}, fmt.Errorf("tick message without %q field", fieldDelta)
	}
	if _, isNum := dt.GetKind().(*structpb.Value_NumberValue); !isNum {
		return 0, Input{}, fmt.Errorf("tick field %q is not a number", fieldDelta)
	}
	in := Input{
		Steer: geometry.Vector2D{X: f[fieldSteerX].GetNumberValue(), Y: f[fieldSteerY].GetNumberValue()},
		Boost: f[fieldBoost].GetBoolValue(),
		Exit:  f[fieldExit].GetBoolValue(),
	}
	return dt.GetNumberValue(), in, nil
}

// NewCommand wraps a host command.
func NewCommand(cmd string) *wrapperspb.StringValue {
	return wrapperspb.String(cmd)
}

// NewFrameRequest asks the world actor to push its current frame without ticking.
func NewFrameRequest() *emptypb.Empty {
	return &emptypb.Empty{}
}
