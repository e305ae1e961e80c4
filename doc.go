// Package zpl provides a client for Zebra label printers speaking ZPL II.
//
// A Client holds the label being built and the printer it is sent to. Drawing
// calls append commands to the label; SendMessage or Print deliver it over a
// raw TCP socket (port 9100) or as an HTTP form post.
//
// Basic usage:
//
//	client, err := zpl.New("192.168.1.50")
//
//	client.SetPosition(30, 30)
//	err = client.WriteText(zpl.Text("Hello"), zpl.WithCharSize(40, 30))
//	err = client.DrawBox(zpl.Box{Width: 400, Height: 100, Thickness: 3}, zpl.At(20, 20))
//
//	// Connect, send and disconnect in one call
//	err = client.Print(ctx)
//
// Monochrome BMP images are uploaded once and rendered as often as needed:
//
//	logo, err := zpl.LoadBitmap("logo.bmp", "LOGO")
//	err = client.UploadBitmap(logo)
//	err = client.RenderBitmap(logo, zpl.At(600, 20), zpl.WithScale(2, 2))
//
// The image width must be a multiple of 32 pixels.
//
// Several labels can share one transmission by calling NextLabel between
// them. Errors wrap one of ErrConfiguration, ErrValidation, ErrFormat,
// ErrConnection or ErrTransport; nothing is retried internally and a failed
// send keeps the label for another attempt.
package zpl
