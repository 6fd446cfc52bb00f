package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
)

// chromiumEngine drives a headless browser to paginate the compiled page.
// One browser instance per export call, torn down on every exit path.
type chromiumEngine struct {
	config *common.RendererConfig
	logger arbor.ILogger
}

func newChromiumEngine(config *common.RendererConfig, logger arbor.ILogger) *chromiumEngine {
	return &chromiumEngine{
		config: config,
		logger: logger,
	}
}

func (e *chromiumEngine) name() string { return "chromium" }

// render loads the compiled markup, waits (bounded) for the chart flag, and
// prints to PDF with a running header and footer. The cancel funcs below run
// on success, print failure and timeout alike; no browser process outlives
// the call.
func (e *chromiumEngine) render(ctx context.Context, htmlContent, title string) ([]byte, bool, error) {
	timeout := e.config.PageTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	runCtx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	opts := e.buildAllocatorOptions()
	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(runCtx, opts...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedp.NewContext(allocatorCtx,
		chromedp.WithLogf(func(s string, i ...interface{}) {
			e.logger.Debug().Msgf("chromedp: "+s, i...)
		}),
	)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
	); err != nil {
		return nil, false, fmt.Errorf("failed to load document markup: %w", err)
	}

	chartDrawn := e.waitForChart(browserCtx)

	var pdf []byte
	if err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate(fmt.Sprintf(`<div style="font-size:8px; width:100%%; text-align:center; color:#64748b;">%s</div>`, title)).
			WithFooterTemplate(`<div style="font-size:8px; width:100%; text-align:center; color:#64748b;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`).
			WithMarginTop(0.7).
			WithMarginBottom(0.7).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = buf
		return nil
	})); err != nil {
		return nil, chartDrawn, fmt.Errorf("failed to print document: %w", err)
	}

	return pdf, chartDrawn, nil
}

// waitForChart polls the chartRendered flag up to the configured bound.
// Timing out is a degraded outcome, not an error: printing proceeds with
// whatever has painted.
func (e *chromiumEngine) waitForChart(browserCtx context.Context) bool {
	wait := e.config.ChartWait
	if wait <= 0 {
		wait = 5 * time.Second
	}

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		var rendered bool
		err := chromedp.Run(browserCtx, chromedp.Evaluate("window.chartRendered === true", &rendered))
		if err != nil {
			e.logger.Warn().Err(err).Msg("Chart readiness probe failed, printing anyway")
			return false
		}
		if rendered {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}

	e.logger.Warn().Dur("chart_wait", wait).Msg("Chart did not signal completion within bound, printing anyway")
	return false
}

func (e *chromiumEngine) buildAllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1280, 1696),
	}
	if e.config.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.config.ChromePath))
	}
	return opts
}
