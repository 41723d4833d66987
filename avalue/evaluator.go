package avalue

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/bytearena/sightline/common/geometry"
	"github.com/bytearena/sightline/common/recording"
	"github.com/bytearena/sightline/common/spatialindex"
	"github.com/bytearena/sightline/common/stats"
	"github.com/bytearena/sightline/common/types"
	"github.com/bytearena/sightline/common/utils/number"
	"github.com/bytearena/sightline/common/utils/vector"
	uuid "github.com/satori/go.uuid"
	bettererrors "github.com/xtuc/better-errors"
)

type Option func(*Evaluator)

// WithResultHook streams every result as soon as it is computed. Calls are
// serialized, in completion order.
func WithResultHook(hook func(types.Result)) Option {
	return func(e *Evaluator) {
		e.hook = hook
	}
}

func WithCounters(counters *stats.Counters) Option {
	return func(e *Evaluator) {
		e.counters = counters
	}
}

type Evaluator struct {
	recorder recording.Recorder
	counters *stats.Counters

	hook      func(types.Result)
	hookMutex *sync.Mutex
}

func NewEvaluator(recorder recording.Recorder, opts ...Option) *Evaluator {
	if recorder == nil {
		recorder = recording.MakeEmptyRecorder()
	}

	e := &Evaluator{
		recorder:  recorder,
		counters:  stats.NewCounters(),
		hookMutex: &sync.Mutex{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Evaluator) Counters() *stats.Counters {
	return e.counters
}

// evaluation is the read-only state shared by the workers of one call.
type evaluation struct {
	audience types.Audience
	settings types.Settings
	target   *types.TargetArea
	cone     *types.ViewCone
	coneClip geometry.Polygon
	coneArea float64
	index    *spatialindex.Index
}

// Evaluate computes one result per spectator. Problems are reported to the
// recorder, never through the results: invalid input yields no result, a
// spectator that cannot be evaluated gets the default score. On
// cancellation the results computed so far are returned.
func (e *Evaluator) Evaluate(ctx context.Context, audience types.Audience, settings *types.Settings, target *types.TargetArea) []types.Result {
	if ctx == nil {
		ctx = context.Background()
	}

	results, _ := e.evaluate(ctx, audience, settings, target)

	return results
}

// evaluate reports whether it stopped on cancellation, in which case the
// cancellation has already been recorded.
func (e *Evaluator) evaluate(ctx context.Context, audience types.Audience, settings *types.Settings, target *types.TargetArea) ([]types.Result, bool) {
	e.counters.Evaluations.Add(1)

	if err := validateInput(audience, settings, target); err != nil {
		e.record(recording.Levels.Error, recording.Kinds.InvalidInput, uuid.Nil, err)
		return []types.Result{}, false
	}

	ev := &evaluation{
		audience: audience.Clone(),
		settings: *settings,
		target:   &types.TargetArea{Outline: append([]vector.Vector3(nil), target.Outline...)},
		cone:     settings.Cone,
	}

	if ev.cone == nil {
		ev.cone = types.RectangularViewCone(settings.ConeWidth, settings.ConeHeight, settings.NearClipDistance)
		e.record(recording.Levels.Note, recording.Kinds.Evaluation, uuid.Nil, bettererrors.
			New("No view cone given, using the rectangular cone of the settings").
			SetContext("width", number.FloatToStr(settings.ConeWidth, 2)).
			SetContext("height", number.FloatToStr(settings.ConeHeight, 2)),
		)
	}

	if err := ev.cone.Validate(); err != nil {
		e.record(recording.Levels.Error, recording.Kinds.DegenerateGeometry, uuid.Nil, err)
		e.counters.Degenerate.Add(len(ev.audience))

		results := make([]types.Result, len(ev.audience))
		for i, s := range ev.audience {
			results[i] = types.MakeDefaultResult(s, settings.DefaultScore)
			e.emit(results[i])
		}

		return results, false
	}

	ev.coneClip = ev.cone.Clip()
	ev.coneArea = ev.cone.Area()

	if settings.OcclusionEnabled {
		index, err := spatialindex.BuildIndex(spatialindex.Flatten(ev.audience.Eyes()))
		if err != nil {
			e.record(recording.Levels.Error, recording.Kinds.Evaluation, uuid.Nil, err)
			return []types.Result{}, false
		}

		ev.index = index
	}

	if settings.Parallel {
		return e.evaluateParallel(ctx, ev)
	}

	return e.evaluateSequential(ctx, ev)
}

// EvaluateAll evaluates several audiences against the same target, stopping
// at the first cancelled one.
func (e *Evaluator) EvaluateAll(ctx context.Context, audiences []types.Audience, settings *types.Settings, target *types.TargetArea) [][]types.Result {
	if ctx == nil {
		ctx = context.Background()
	}

	res := make([][]types.Result, 0, len(audiences))

	for _, audience := range audiences {
		if ctx.Err() != nil {
			e.recordCancelled(ctx.Err())
			break
		}

		results, cancelled := e.evaluate(ctx, audience, settings, target)
		res = append(res, results)

		if cancelled {
			break
		}
	}

	return res
}

func (e *Evaluator) evaluateSequential(ctx context.Context, ev *evaluation) ([]types.Result, bool) {
	results := make([]types.Result, 0, len(ev.audience))

	for i := range ev.audience {
		if ctx.Err() != nil {
			e.recordCancelled(ctx.Err())
			return results, true
		}

		results = append(results, e.evaluateSpectator(ev, i))
	}

	return results, false
}

func (e *Evaluator) evaluateParallel(ctx context.Context, ev *evaluation) ([]types.Result, bool) {
	workers := ev.settings.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers > len(ev.audience) {
		workers = len(ev.audience)
	}

	slots := make([]types.Result, len(ev.audience))
	done := make([]bool, len(ev.audience))

	jobs := make(chan int)
	wait := &sync.WaitGroup{}
	wait.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wait.Done()

			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}

				// every worker owns the slots it is handed
				slots[i] = e.evaluateSpectator(ev, i)
				done[i] = true
			}
		}()
	}

dispatch:
	for i := range ev.audience {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}

	close(jobs)
	wait.Wait()

	results := make([]types.Result, 0, len(slots))
	for i, result := range slots {
		if done[i] {
			results = append(results, result)
		}
	}

	if ctx.Err() != nil {
		e.recordCancelled(ctx.Err())
		return results, true
	}

	return results, false
}

func (e *Evaluator) evaluateSpectator(ev *evaluation, i int) types.Result {
	spectator := ev.audience[i]

	result := e.safely(spectator, ev.settings.DefaultScore, func() (types.Result, error) {
		return e.computeSpectator(ev, i)
	})

	e.emit(result)

	return result
}

// safely isolates the failure of one spectator: errors and panics are
// recorded and replaced by a default result.
func (e *Evaluator) safely(spectator types.Spectator, defaultScore float64, compute func() (types.Result, error)) (result types.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.counters.Failed.Add(1)
			e.record(recording.Levels.Error, recording.Kinds.Evaluation, spectator.ID, bettererrors.
				New("Spectator evaluation panicked").
				SetContext("spectator", spectator.Label).
				SetContext("panic", fmt.Sprintf("%v", r)),
			)

			result = types.MakeDefaultResult(spectator, defaultScore)
		}
	}()

	result, err := compute()
	if err != nil {
		e.counters.Failed.Add(1)
		e.record(recording.Levels.Error, recording.Kinds.DegenerateGeometry, spectator.ID, bettererrors.
			New("Spectator could not be evaluated").
			SetContext("spectator", spectator.Label).
			With(err),
		)

		return types.MakeDefaultResult(spectator, defaultScore)
	}

	e.counters.Evaluated.Add(1)

	return result
}

func (e *Evaluator) computeSpectator(ev *evaluation, i int) (types.Result, error) {
	spectator := ev.audience[i]

	reference, direction, err := SightLine(spectator, ev.settings, ev.target)
	if err != nil {
		return types.Result{}, err
	}

	frame, err := BuildFrame(spectator.Eye, direction)
	if err != nil {
		return types.Result{}, err
	}

	if frame.Fallback {
		e.record(recording.Levels.Warning, recording.Kinds.DegenerateGeometry, spectator.ID, ErrParallelToUp)
	}

	pipeline := NewPipeline(frame, ev.settings.NearClipDistance)
	visible, visibleArea := pipeline.Visible(ev.target.Outline, ev.coneClip)

	result := types.Result{
		SpectatorID:    spectator.ID,
		Label:          spectator.Label,
		AValue:         number.Clamp(100*visibleArea/ev.coneArea, 0, 100),
		ReferencePoint: reference,
		ViewDirection:  direction,
		Footprint:      geometry.FromPolygon(visible),
		ConeBoundary:   append([]vector.Vector2(nil), ev.cone.Polygon...),
	}

	if ev.settings.OcclusionEnabled && ev.index != nil {
		candidates := Candidates(ev.index, i, spectator.Eye, direction, ev.settings, ev.cone.HorizontalHalfAngle(ev.settings.NearClipDistance))
		occluded := accumulateOcclusion(pipeline, visible, ev.coneArea, ev.audience, candidates, ev.settings)

		if occluded.Clamped() {
			e.record(recording.Levels.Warning, recording.Kinds.Evaluation, spectator.ID, bettererrors.
				New("Occlusion exceeds the view cone area, clamped to 100").
				SetContext("spectator", spectator.Label).
				SetContext("raw", number.FloatToStr(occluded.Raw, 4)).
				SetContext("occluders", number.FloatToStr(float64(len(occluded.IDs)), 0)),
			)
		}

		result.Occlusion = occluded.Percent
		result.Occluders = occluded.Silhouettes
		result.OccluderIDs = occluded.IDs
	}

	return result, nil
}

func validateInput(audience types.Audience, settings *types.Settings, target *types.TargetArea) error {
	if audience == nil {
		return bettererrors.New("Audience is nil")
	}

	if settings == nil {
		return bettererrors.New("Settings are nil")
	}

	if target == nil {
		return bettererrors.New("Target area is nil")
	}

	if err := settings.Validate(); err != nil {
		return bettererrors.New("Invalid settings").With(err)
	}

	if err := target.Validate(); err != nil {
		return bettererrors.New("Invalid target area").With(err)
	}

	return nil
}

func (e *Evaluator) emit(result types.Result) {
	if e.hook == nil {
		return
	}

	e.hookMutex.Lock()
	e.hook(result)
	e.hookMutex.Unlock()
}

func (e *Evaluator) record(level recording.Level, kind recording.Kind, spectatorID uuid.UUID, err error) {
	e.recorder.Record(recording.MakeEvent(level, kind, spectatorID, err))
}

func (e *Evaluator) recordCancelled(err error) {
	e.counters.Cancelled.Add(1)
	e.record(recording.Levels.Error, recording.Kinds.Cancelled, uuid.Nil, bettererrors.
		New("Evaluation cancelled").
		With(err),
	)
}
