package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PrintPDF renders a filled scorecard HTML document to a PDF file using
// a headless browser. The HTML is staged to a temp file so relative
// asset paths in the template keep working.
func PrintPDF(ctx context.Context, htmlContent, outputPath string) error {
	dir, err := os.MkdirTemp("", "deadball-scorecard-*")
	if err != nil {
		return fmt.Errorf("staging scorecard: %w", err)
	}
	defer os.RemoveAll(dir)

	staged := filepath.Join(dir, "scorecard.html")
	if err := os.WriteFile(staged, []byte(htmlContent), 0o644); err != nil {
		return fmt.Errorf("staging scorecard: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, 60*time.Second)
	defer cancelTimeout()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+staged),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("printing scorecard PDF: %w", err)
	}

	if err := os.WriteFile(outputPath, pdf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
