package units

// ISQ base dimensions.
var (
	Length            = must(Default.DeclareBase("L", "length"))
	Mass              = must(Default.DeclareBase("M", "mass"))
	Time              = must(Default.DeclareBase("T", "time"))
	Current           = must(Default.DeclareBase("I", "electric current"))
	Temperature       = must(Default.DeclareBase("Θ", "thermodynamic temperature"))
	AmountOfSubstance = must(Default.DeclareBase("N", "amount of substance"))
	LuminousIntensity = must(Default.DeclareBase("J", "luminous intensity"))
)

// SI base units.
var (
	Metre    = must(Default.DeclareUnit("m", Length, 1))
	Kilogram = must(Default.DeclareUnit("kg", Mass, 1))
	Second   = must(Default.DeclareUnit("s", Time, 1))
	Ampere   = must(Default.DeclareUnit("A", Current, 1))
	Kelvin   = must(Default.DeclareUnit("K", Temperature, 1))
	Mole     = must(Default.DeclareUnit("mol", AmountOfSubstance, 1))
	Candela  = must(Default.DeclareUnit("cd", LuminousIntensity, 1))
)

// Scaled and derived units.
var (
	Kilometre  = must(Default.DefineUnit("km", Metre, 1e3))
	Centimetre = must(Default.DefineUnit("cm", Metre, 1e-2))
	Millimetre = must(Default.DefineUnit("mm", Metre, 1e-3))

	SquareMetre = Metre.Pow(Int(2))
	CubicMetre  = Metre.Pow(Int(3))

	Gram = must(Default.DefineUnit("g", Kilogram, 1e-3))

	Minute = must(Default.DefineUnit("min", Second, 60))
	Hour   = must(Default.DefineUnit("h", Second, 3600))
	Day    = must(Default.DefineUnit("d", Hour, 24))

	Litre      = must(Default.DefineUnit("l", CubicMetre, 1e-3))
	Millilitre = must(Default.DefineUnit("ml", Litre, 1e-3))

	Newton   = must(Default.DefineUnit("N", Kilogram.Mul(Metre).Div(Second.Pow(Int(2))), 1))
	Pascal   = must(Default.DefineUnit("Pa", Newton.Div(SquareMetre), 1))
	Joule    = must(Default.DefineUnit("J", Newton.Mul(Metre), 1))
	Watt     = must(Default.DefineUnit("W", Joule.Div(Second), 1))
	Kilowatt = must(Default.DefineUnit("kW", Watt, 1e3))

	KilowattHour = Kilowatt.Mul(Hour)

	DegreeCelsius = must(Default.DeclareAffineUnit("°C", Temperature, 1, 273.15))

	Percent = must(Default.DeclareUnit("%", Dimensionless, 1e-2))
)

// International (imperial) units.
var (
	Inch  = must(Default.DefineUnit("in", Metre, 0.0254))
	Ounce = must(Default.DefineUnit("oz", Kilogram, 0.028349523125))
	Pound = must(Default.DefineUnit("lb", Kilogram, 0.45359237))
)

// Physical constants (SI 2019 exact values).
var (
	StandardGravity      = New(9.80665, Metre.Div(Second.Pow(Int(2))))
	BoltzmannConstant    = New(1.380649e-23, Joule.Div(Kelvin))
	AvogadroConstant     = New(6.02214076e23, Mole.Inverse())
	UniversalGasConstant = BoltzmannConstant.Mul(AvogadroConstant)
)
