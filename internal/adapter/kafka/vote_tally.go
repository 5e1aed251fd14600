package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"

	"github.com/maribelsv/showcase/internal/core/port"
	"github.com/maribelsv/showcase/pkg/schema"
)

var _ port.VotesTally = (*VoteTallyView)(nil)

// A productEventCodec used for serde [schema.ProductEventV1]
type productEventCodec struct {
	serde Serde
}

func newProductEventCodec(s Serde) productEventCodec {
	return productEventCodec{s}
}

func (c productEventCodec) Encode(v any) ([]byte, error) {
	const op = "productEventCodec.Encode"
	if _, ok := v.(schema.ProductEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c productEventCodec) Decode(data []byte) (any, error) {
	const op = "productEventCodec.Decode"
	var s schema.ProductEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A TallyValue is the persisted vote total for one product.
type TallyValue int64

type TallyValueCodec struct{}

func (TallyValueCodec) Encode(v any) ([]byte, error) {
	const op = "TallyValueCodec.Encode"
	tv, ok := v.(TallyValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(tv), 10)
	return data, nil
}

func (TallyValueCodec) Decode(data []byte) (any, error) {
	const op = "TallyValueCodec.Decode"
	tv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return TallyValue(tv), nil
}

// A VoteTallyProcessor folds voted events into a per-product group
// table which the tally view serves.
type VoteTallyProcessor struct {
	gp *goka.Processor
}

func NewVoteTallyProcessor(
	seedBrokers []string, stream, group string, eventSerde Serde,
) (VoteTallyProcessor, error) {
	const op = "NewVoteTallyProcessor"
	p := VoteTallyProcessor{}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), newProductEventCodec(eventSerde), p.processFn),
		goka.Persist(TallyValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg)
	if err != nil {
		return VoteTallyProcessor{}, opErr(err, op)
	}

	return VoteTallyProcessor{gp}, nil
}

func (p VoteTallyProcessor) Run(ctx context.Context) {
	const op = "VoteTallyProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p VoteTallyProcessor) Close() {
	const op = "VoteTallyProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

func (p VoteTallyProcessor) processFn(ctx goka.Context, msg any) {
	e, ok := msg.(schema.ProductEventV1)
	if !ok {
		return
	}

	if e.EventType != "voted" {
		return
	}

	var tally TallyValue
	if v := ctx.Value(); v != nil {
		tally = v.(TallyValue)
	}
	ctx.SetValue(tally + 1)
}

// A VoteTallyView serves the vote totals materialized by
// [VoteTallyProcessor].
type VoteTallyView struct {
	gv *goka.View
}

func NewVoteTallyView(
	seedBrokers []string, group string,
) (VoteTallyView, error) {
	const op = "NewVoteTallyView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		TallyValueCodec{},
	)
	if err != nil {
		return VoteTallyView{}, opErr(err, op)
	}
	return VoteTallyView{gv}, nil
}

func (v VoteTallyView) Run(ctx context.Context) {
	const op = "VoteTallyView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v VoteTallyView) ProductTally(productID string) (int64, error) {
	const op = "VoteTallyView.ProductTally"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	tally, ok := val.(TallyValue)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(tally), nil
}
