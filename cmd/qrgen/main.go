// Command qrgen renders the branded QR posters placed at quest locations.
// Each poster encodes the deep link that activates one catalog task and
// carries the task title as a caption.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/questgo/backend/internal/catalog"
)

var brand = color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff}

const (
	qrSize    = 512
	margin    = 30
	footerPad = 220
)

func main() {
	catalogPath := flag.String("catalog", "./assets/tasks.json", "path to the task catalog")
	botUsername := flag.String("bot", "", "bot username embedded in the deep links")
	outDir := flag.String("out", "./qr_codes", "output directory")
	logoPath := flag.String("logo", "./assets/logo.png", "optional logo overlaid under the code")
	flag.Parse()

	if *botUsername == "" {
		log.Fatal("qrgen: -bot is required")
	}

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Fatalf("qrgen: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("qrgen: %v", err)
	}

	logo := loadLogo(*logoPath)

	for _, task := range cat.Tasks() {
		link := fmt.Sprintf("https://t.me/%s?start=%s", *botUsername, task.ID)
		poster, err := renderPoster(link, task.Title, logo)
		if err != nil {
			log.Fatalf("qrgen: task %s: %v", task.ID, err)
		}

		outPath := filepath.Join(*outDir, task.ID+".png")
		if err := writePNG(outPath, poster); err != nil {
			log.Fatalf("qrgen: task %s: %v", task.ID, err)
		}
		log.Printf("wrote %s", outPath)
	}
}

func renderPoster(link, caption string, logo image.Image) (image.Image, error) {
	code, err := qrcode.New(link, qrcode.High)
	if err != nil {
		return nil, err
	}
	code.ForegroundColor = brand
	qr := code.Image(qrSize)

	bounds := qr.Bounds()
	width := bounds.Dx() + 2*margin
	height := bounds.Dy() + footerPad

	poster := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(poster, poster.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(poster, image.Rect(margin, margin, margin+bounds.Dx(), margin+bounds.Dy()), qr, bounds.Min, draw.Over)

	captionY := bounds.Dy() + 60
	if logo != nil {
		logoSize := bounds.Dx() / 4
		logoX := (width - logoSize) / 2
		logoY := bounds.Dy() + 20
		drawLogo(poster, logo, logoX, logoY, logoSize)
		captionY = logoY + logoSize + 30
	}

	drawCaption(poster, caption, width, captionY)
	return poster, nil
}

func drawLogo(dst *image.RGBA, logo image.Image, x, y, size int) {
	target := image.Rect(x, y, x+size, y+size)
	xdraw.ApproxBiLinear.Scale(dst, target, logo, logo.Bounds(), draw.Over, nil)

	// Thin frame around the logo, brand-colored.
	const pad = 10
	const stroke = 3
	frame := image.Rect(x-pad, y-pad, x+size+pad, y+size+pad)
	src := image.NewUniform(brand)
	draw.Draw(dst, image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, frame.Min.Y+stroke), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(frame.Min.X, frame.Max.Y-stroke, frame.Max.X, frame.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(frame.Min.X, frame.Min.Y, frame.Min.X+stroke, frame.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(frame.Max.X-stroke, frame.Min.Y, frame.Max.X, frame.Max.Y), src, image.Point{}, draw.Src)
}

func drawCaption(dst *image.RGBA, text string, width, y int) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(brand),
		Face: face,
		Dot:  fixed.P((width-textWidth)/2, y),
	}
	d.DrawString(text)
}

func loadLogo(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	logo, err := png.Decode(f)
	if err != nil {
		log.Printf("qrgen: skipping logo %s: %v", path, err)
		return nil
	}
	return logo
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
