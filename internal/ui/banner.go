package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarydash/internal/utils"
)

const bannerText = `
▄▄███▄▄· █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗   ██████╗  █████╗ ▄▄███▄▄·██╗  ██╗
██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝   ██╔══██╗██╔══██╗██╔════╝██║  ██║
███████╗███████║██║     ███████║██████╔╝ ╚████╔╝    ██║  ██║███████║███████╗███████║
╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝     ██║  ██║██╔══██║╚════██║██╔══██║
███████║██║  ██║███████╗██║  ██║██║  ██║   ██║      ██████╔╝██║  ██║███████║██║  ██║
╚═▀▀▀══╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝      ╚═════╝ ╚═╝  ╚═╝╚═▀▀▀══╝╚═╝  ╚═╝
 annual salaries for data roles
`

// ColorizeText fades the text between two random colours
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := []rune(text)
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(string(ch)))
	}
	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// ColorizeSalary colours an annual salary by band
func ColorizeSalary(salary float64) string {
	formatted := utils.FormatSalary(salary)

	switch utils.BandOf(salary) {
	case utils.BandTop:
		return pterm.Green(formatted)
	case utils.BandHigh:
		return pterm.LightGreen(formatted)
	case utils.BandMid:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
