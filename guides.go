package zpl

import (
	"context"
	"fmt"
	"strconv"
)

// DefaultFonts lists the built-in font identifiers.
const DefaultFonts = "ABCDEFGH0PQRSTUV"

// Settings are the media settings stored by ApplySettings.
type Settings struct {
	PrintWidth  int
	LabelLength int
	Inverted    bool
	Mirrored    bool
	Home        Position
}

// DefaultSettings returns settings for a 4" wide, 1.5" long label at 203 dpi.
func DefaultSettings() Settings {
	return Settings{
		PrintWidth:  815,
		LabelLength: 316,
	}
}

// ApplySettings sends s to the printer as a document of its own.
func ApplySettings(ctx context.Context, c *Client, s Settings) error {
	c.logger.Info("Setting printer settings", "printWidth", s.PrintWidth, "labelLength", s.LabelLength)

	return c.scoped(ctx, nil, func(c *Client) error {
		c.SetPrintWidth(s.PrintWidth)
		c.SetLabelLength(s.LabelLength)
		c.SetInverted(s.Inverted)
		c.SetMirrored(s.Mirrored)
		c.SetLabelHome(s.Home.X, s.Home.Y)
		return c.SendMessage(ctx)
	})
}

// PrintPositionGuide prints a ruler of dot offsets along both label edges.
func PrintPositionGuide(ctx context.Context, c *Client) error {
	c.logger.Info("Printing position guide")

	return c.scoped(ctx, nil, func(c *Client) error {
		if err := c.SetFont("0"); err != nil {
			return err
		}
		c.SetCharSize(20, 20)

		for i := range 20 {
			c.SetPosition(i*50, 30)
			if err := c.WriteText(Text(strconv.Itoa(c.Position().X))); err != nil {
				return err
			}
		}
		for i := range 20 {
			c.SetPosition(30, i*50)
			if err := c.WriteText(Text(strconv.Itoa(c.Position().Y))); err != nil {
				return err
			}
		}

		return c.SendMessage(ctx)
	})
}

// PrintFontSizeGuide prints font 0 in growing character sizes.
func PrintFontSizeGuide(ctx context.Context, c *Client) error {
	c.logger.Info("Printing font 0 size guide")

	return c.scoped(ctx, nil, func(c *Client) error {
		if err := c.SetFont("0"); err != nil {
			return err
		}
		c.SetCharSize(50, 50)
		c.SetPosition(450, 30)
		if err := c.WriteText(Text("Font: 0")); err != nil {
			return err
		}

		for i := 1; i < 20; i++ {
			size := 10 + i*10
			c.SetCharSize(size, size)
			c.SetPosition(30, i*50-25)
			if err := c.WriteText(Text(fmt.Sprintf("char_size: (%d, %d)", size, size))); err != nil {
				return err
			}
		}

		return c.SendMessage(ctx)
	})
}

// PrintFontGuide prints a sample of every built-in font.
func PrintFontGuide(ctx context.Context, c *Client) error {
	c.logger.Info("Printing font guide")

	columns := []struct {
		x, step, offset, first, count int
	}{
		{x: 30, step: 50, offset: 15, first: 0, count: 6},
		{x: 250, step: 65, offset: 15, first: 6, count: 5},
		{x: 550, step: 50, offset: 15, first: 11, count: 5},
	}

	return c.scoped(ctx, nil, func(c *Client) error {
		c.SetCharSize(4, 4)

		for _, col := range columns {
			for i := range col.count {
				font := string(DefaultFonts[col.first+i])
				if err := c.SetFont(font); err != nil {
					return err
				}
				c.SetPosition(col.x, i*col.step+col.offset)
				if err := c.WriteText(Text(font + ":abcd")); err != nil {
					return err
				}
			}
		}

		return c.SendMessage(ctx)
	})
}
