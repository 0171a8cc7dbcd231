package scenes

import "github.com/san-kum/nocturne/internal/display"

// Shared night palette.
var (
	nightPurple  = display.Hex("#1a1035")
	midPurple    = display.Hex("#2d1b4e")
	moonGlow     = display.Hex("#e8e0f0")
	moonHalo     = display.Hex("#d4c5e8")
	mountainMid  = display.Hex("#3a2a5c")
	mountainDark = display.Hex("#22163a")
	cityOrange   = display.Hex("#ff8c42")
	cityYellow   = display.Hex("#ffd166")
	cityPink     = display.Hex("#ef6f9c")
	warmAmber    = display.Hex("#ffb347")
	dustyPink    = display.Hex("#d8a0b8")
	rainBlue     = display.Hex("#b4c8ff")
	starWhite    = display.Hex("#e8e0f0")
	pineDark     = display.Hex("#0f3a1c")
	pineBack     = display.Hex("#0a2414")
	fireflyGlow  = display.Hex("#d8ff6a")
	seaDeep      = display.Hex("#0f2848")
	seaLight     = display.Hex("#3a6ea5")
	beamGold     = display.Hex("#fff1b0")
	neonPink     = display.Hex("#ff2d95")
	neonRose     = display.Hex("#ff6eb4")
	neonCyan     = display.Hex("#4de8e0")
	neonAqua     = display.Hex("#00fff5")
	neonOrchid   = display.Hex("#c77dba")
	towerFar     = display.Hex("#0d0520")
	towerNear    = display.Hex("#1c0b30")
)

var (
	cityLights = []display.RGB{cityOrange, cityYellow, cityPink, warmAmber, dustyPink}
	neonSigns  = []display.RGB{neonPink, neonRose, neonCyan, neonAqua, warmAmber, neonOrchid}
)
