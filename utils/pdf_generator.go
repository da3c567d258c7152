package utils

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"freightflow/models"
)

// ChromePDF prints the HTML LR copy with headless Chrome.
type ChromePDF struct {
	// ExecPath points at a Chrome/Chromium binary; empty uses the default lookup.
	ExecPath string
	Timeout  time.Duration
}

func (c *ChromePDF) Render(ctx context.Context, copies []models.LRCopyData) ([]byte, error) {
	html, err := RenderLRCopyHTML(copies)
	if err != nil {
		return nil, err
	}

	// Create temp HTML file
	tmp, err := os.CreateTemp("", "lr_copy_*.html")
	if err != nil {
		return nil, err
	}
	tmpHTML := tmp.Name()
	defer os.Remove(tmpHTML)
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tmpHTML)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
