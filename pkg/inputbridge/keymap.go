// Package inputbridge translates RFB keyboard and pointer events into PTY
// byte writes and grid selection updates: key symbols become the byte
// sequences a Linux console expects, left-drag drives selection, and
// right-click replays the selection as paste.
package inputbridge

// Keysym is an X11 key symbol, as delivered by an RFB keyboard event.
type Keysym uint32

// X11 keysymdef values for the keys with console byte sequences.
const (
	KeyBackSpace Keysym = 0xff08
	KeyTab       Keysym = 0xff09
	KeyReturn    Keysym = 0xff0d
	KeyEscape    Keysym = 0xff1b

	KeyHome   Keysym = 0xff50
	KeyLeft   Keysym = 0xff51
	KeyUp     Keysym = 0xff52
	KeyRight  Keysym = 0xff53
	KeyDown   Keysym = 0xff54
	KeyPageUp Keysym = 0xff55
	KeyPageDn Keysym = 0xff56
	KeyEnd    Keysym = 0xff57
	KeyInsert Keysym = 0xff63
	KeyDelete Keysym = 0xffff

	KeyControlL Keysym = 0xffe3
	KeyControlR Keysym = 0xffe4

	KeyF1  Keysym = 0xffbe
	KeyF2  Keysym = 0xffbf
	KeyF3  Keysym = 0xffc0
	KeyF4  Keysym = 0xffc1
	KeyF5  Keysym = 0xffc2
	KeyF6  Keysym = 0xffc3
	KeyF7  Keysym = 0xffc4
	KeyF8  Keysym = 0xffc5
	KeyF9  Keysym = 0xffc6
	KeyF10 Keysym = 0xffc7
	KeyF11 Keysym = 0xffc8
	KeyF12 Keysym = 0xffc9
	KeyF13 Keysym = 0xffca
	KeyF14 Keysym = 0xffcb
	KeyF15 Keysym = 0xffcc
	KeyF16 Keysym = 0xffcd
	KeyF17 Keysym = 0xffce
	KeyF18 Keysym = 0xffcf
	KeyF19 Keysym = 0xffd0
	KeyF20 Keysym = 0xffd1
)

// linuxConsoleSequences maps keysyms to the byte sequences the Linux
// console emits for those keys.
var linuxConsoleSequences = map[Keysym]string{
	KeyEscape:    "\x1b",
	KeyTab:       "\t",
	KeyReturn:    "\r",
	KeyBackSpace: "\x7f",

	KeyHome:   "\x1b[1~",
	KeyInsert: "\x1b[2~",
	KeyDelete: "\x1b[3~",
	KeyEnd:    "\x1b[4~",
	KeyPageUp: "\x1b[5~",
	KeyPageDn: "\x1b[6~",

	KeyUp:    "\x1b[A",
	KeyDown:  "\x1b[B",
	KeyRight: "\x1b[C",
	KeyLeft:  "\x1b[D",

	KeyF1: "\x1b[[A",
	KeyF2: "\x1b[[B",
	KeyF3: "\x1b[[C",
	KeyF4: "\x1b[[D",
	KeyF5: "\x1b[[E",

	KeyF6:  "\x1b[17~",
	KeyF7:  "\x1b[18~",
	KeyF8:  "\x1b[19~",
	KeyF9:  "\x1b[20~",
	KeyF10: "\x1b[21~",
	KeyF11: "\x1b[23~",
	KeyF12: "\x1b[24~",
	KeyF13: "\x1b[25~",
	KeyF14: "\x1b[26~",
	KeyF15: "\x1b[28~",
	KeyF16: "\x1b[29~",
	KeyF17: "\x1b[31~",
	KeyF18: "\x1b[32~",
	KeyF19: "\x1b[33~",
	KeyF20: "\x1b[34~",
}
