package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bare0/board"
	"github.com/sarchlab/bare0/firmware"
	"github.com/sarchlab/bare0/timing"
)

var _ = Describe("Monitor", func() {
	var (
		engine *timing.SerialEngine
		core   *board.Core
		m      *Monitor
		server *httptest.Server
	)

	get := func(path string) *http.Response {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())
		return rsp
	}

	BeforeEach(func() {
		engine = timing.NewSerialEngine()
		core = board.MakeBuilder().
			WithEngine(engine).
			WithXInit(0).
			WithInvariant(firmware.InvariantEqual).
			WithMaxSteps(5).
			Build("Core")

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterCore(core)

		server = httptest.NewServer(m.Router())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should list registered cores", func() {
		rsp := get("/api/list_components")
		defer rsp.Body.Close()

		var names []string
		Expect(json.NewDecoder(rsp.Body).Decode(&names)).To(Succeed())
		Expect(names).To(Equal([]string{"Core"}))
	})

	It("should report the cells after the simulation ran", func() {
		core.Start()
		Expect(engine.Run()).To(Succeed())

		rsp := get("/api/cells/Core")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		var cells cellsRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&cells)).To(Succeed())
		Expect(cells.Step).To(Equal(uint64(5)))
		Expect(cells.Cycle).To(Equal(uint64(5)))
		Expect(cells.Local).To(Equal(uint32(5)))
		Expect(cells.X).To(Equal(uint32(5)))
		Expect(cells.Y).To(Equal(uint32(5)))
		Expect(cells.Mode).To(Equal("wrapping"))
		Expect(cells.Halted).To(BeFalse())
	})

	It("should report the current cycle", func() {
		core.Start()
		Expect(engine.Run()).To(Succeed())

		rsp := get("/api/now")
		defer rsp.Body.Close()

		var now map[string]uint64
		Expect(json.NewDecoder(rsp.Body).Decode(&now)).To(Succeed())
		Expect(now["now"]).To(Equal(uint64(5)))
	})

	It("should return 404 for unknown cores", func() {
		rsp := get("/api/cells/Nope")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("should pause and continue the engine", func() {
		rsp := get("/api/pause")
		rsp.Body.Close()
		Expect(engine.IsPaused()).To(BeTrue())

		rsp = get("/api/continue")
		rsp.Body.Close()
		Expect(engine.IsPaused()).To(BeFalse())
	})

	It("should track progress bars", func() {
		bar := m.CreateProgressBar("steps", 5)
		core.AcceptHook(StepProgressHook(bar))
		core.Start()
		Expect(engine.Run()).To(Succeed())

		finished, total := bar.Progress()
		Expect(finished).To(Equal(uint64(5)))
		Expect(total).To(Equal(uint64(5)))

		rsp := get("/api/progress")
		var bars []progressBarRsp
		Expect(json.NewDecoder(rsp.Body).Decode(&bars)).To(Succeed())
		rsp.Body.Close()
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("steps"))
		Expect(bars[0].Finished).To(Equal(uint64(5)))
		Expect(bars[0].InProgress).To(BeZero())

		m.CompleteProgressBar(bar)

		rsp = get("/api/progress")
		defer rsp.Body.Close()
		Expect(json.NewDecoder(rsp.Body).Decode(&bars)).To(Succeed())
		Expect(bars).To(BeEmpty())
	})

	It("should serve progress while the engine runs", func() {
		const steps = 20000

		engine = timing.NewSerialEngine()
		core = board.MakeBuilder().
			WithEngine(engine).
			WithXInit(0).
			WithMaxSteps(steps).
			Build("Busy")
		m.RegisterCore(core)

		bar := m.CreateProgressBar("steps", steps)
		core.AcceptHook(StepProgressHook(bar))
		core.Start()

		done := make(chan error, 1)
		go func() {
			done <- engine.Run()
		}()

		polls := 0
		for running := true; running; {
			select {
			case err := <-done:
				Expect(err).To(Succeed())
				running = false
			default:
				rsp := get("/api/progress")
				var bars []progressBarRsp
				Expect(json.NewDecoder(rsp.Body).Decode(&bars)).To(Succeed())
				rsp.Body.Close()

				Expect(bars).To(HaveLen(1))
				Expect(bars[0].Finished + bars[0].InProgress).
					To(BeNumerically("<=", steps))
				polls++
			}
		}

		Expect(polls).To(BeNumerically(">", 0))
		finished, _ := bar.Progress()
		Expect(finished).To(Equal(uint64(steps)))
	})

	It("should leave the halting step in progress", func() {
		engine = timing.NewSerialEngine()
		core = board.MakeBuilder().
			WithEngine(engine).
			WithXInit(0).
			WithInvariant(firmware.InvariantYLagsByOne).
			Build("Halting")

		bar := m.CreateProgressBar("steps", 10)
		core.AcceptHook(StepProgressHook(bar))
		core.Start()
		Expect(engine.Run()).To(Succeed())

		s := bar.snapshot()
		Expect(s.Finished).To(BeZero())
		Expect(s.InProgress).To(Equal(uint64(1)))
	})

	It("should serve the monitoring page", func() {
		rsp := get("/")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	})

	It("should refuse privileged ports", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(BeZero())
		Expect(NewMonitor().WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should not open a browser before the server starts", func() {
		Expect(NewMonitor().OpenInBrowser()).NotTo(Succeed())
	})
})
