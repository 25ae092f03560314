package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/metrics"
	"github.com/zackradisic/toilet-paper-twitter/internal/sim"
)

func newTestPhysics() *cloth.Physics {
	params := cloth.DefaultParams()
	params.FixedStep = 0.01
	c, err := cloth.New(1, 1, 4, 4, params)
	Expect(err).NotTo(HaveOccurred())
	return cloth.NewPhysics(c)
}

type frameRecorder struct {
	times []float64
}

func (r *frameRecorder) OnFrame(c *cloth.Cloth, t float64) {
	r.times = append(r.times, t)
}

var _ = Describe("Runner", func() {
	var runner *sim.Runner
	var cfg sim.Config

	BeforeEach(func() {
		runner = sim.New(newTestPhysics())
		cfg = sim.Config{Duration: 0.1, FrameTime: 0.01, ValidateState: true}
	})

	Describe("configuration validation", func() {
		It("rejects a non-positive frame time", func() {
			cfg.FrameTime = 0
			_, err := runner.Run(context.Background(), cfg)
			Expect(err).To(MatchError(ContainSubstring("frame time")))
		})

		It("rejects a non-positive duration", func() {
			cfg.Duration = -1
			_, err := runner.Run(context.Background(), cfg)
			Expect(err).To(MatchError(ContainSubstring("duration")))
		})
	})

	Describe("running", func() {
		It("advances the expected number of frames and ticks", func() {
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(Equal(10))
			Expect(result.Ticks).To(Equal(uint64(10)))
			Expect(result.Times).To(HaveLen(10))
			Expect(result.Times[9]).To(BeNumerically("~", 0.1, 1e-9))
		})

		It("records one series sample per frame for every metric", func() {
			runner.AddMetric(metrics.NewConstraintResidual())
			runner.AddMetric(metrics.NewMeanSpeed())
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Series).To(HaveLen(2))
			for name, series := range result.Series {
				Expect(series).To(HaveLen(result.Frames), "series %q", name)
				Expect(result.Metrics).To(HaveKey(name))
			}
		})

		It("reports final metric values matching the last sample", func() {
			runner.AddMetric(metrics.NewMeanSpeed())
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			series := result.Series["mean_speed"]
			Expect(result.Metrics["mean_speed"]).To(Equal(series[len(series)-1]))
		})

		It("notifies observers once per frame with increasing time", func() {
			rec := &frameRecorder{}
			runner.AddObserver(rec)
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.times).To(HaveLen(result.Frames))
			for i := 1; i < len(rec.times); i++ {
				Expect(rec.times[i]).To(BeNumerically(">", rec.times[i-1]))
			}
		})

		It("actually moves the cloth under gravity", func() {
			c := runner.Physics().Cloth()
			start := c.Particle(2, 2).Position
			_, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Particle(2, 2).Position.Y).To(BeNumerically("<", start.Y))
		})
	})

	Describe("cancellation", func() {
		It("returns partial results with the context error", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			result, err := runner.Run(ctx, cfg)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result).NotTo(BeNil())
			Expect(result.Frames).To(Equal(0))
		})
	})

	Describe("state validation", func() {
		It("stops the run when a particle goes non-finite", func() {
			c := runner.Physics().Cloth()
			c.Particle(1, 1).Position.X = math.NaN()
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Frames).To(BeNumerically("<", 10))
		})

		It("ignores bad state when validation is off", func() {
			c := runner.Physics().Cloth()
			c.Particle(1, 1).Position.X = math.NaN()
			cfg.ValidateState = false
			result, err := runner.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Frames).To(Equal(10))
		})
	})

	Describe("RunWithCallback", func() {
		It("stops early when the callback returns false", func() {
			frames := 0
			err := runner.RunWithCallback(context.Background(), cfg, func(c *cloth.Cloth, t float64) bool {
				frames++
				return frames < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(Equal(3))
		})
	})
})
