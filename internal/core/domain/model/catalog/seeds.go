package catalog

// DefaultServices is the catalog a fresh installation starts with.
func DefaultServices() []Service {
	return []Service{
		mustService(NewService("printing-pla", "Impresión 3D PLA", CategoryPrinting, 15, PerHour, ServiceRate,
			[]string{"pla"}, "Biodegradable prints for prototypes and decorative parts.")),
		mustService(NewService("printing-abs", "Impresión 3D ABS", CategoryPrinting, 20, PerHour, ServiceRate,
			[]string{"abs"}, "Heat and impact resistant functional parts.")),
		mustService(NewService("printing-petg", "Impresión 3D PETG", CategoryPrinting, 25, PerHour, ServiceRate,
			[]string{"petg"}, "Chemically resistant parts, food-safe grade available.")),
		mustService(NewService("printing-custom", "Impresión a medida", CategoryPrinting, 0, PerProject, MaterialCost,
			[]string{"abs", "petg", "pla", "resin", "tpu"}, "Quoted from filament mass, machine time and finishing.")),
		mustService(NewService("design-basic", "Diseño 3D básico", CategoryDesign, 30, PerHour, ServiceRate,
			nil, "Simple models from sketches or photos.")),
		mustService(NewService("design-advanced", "Diseño 3D avanzado", CategoryDesign, 50, PerHour, ServiceRate,
			nil, "Complex assemblies, organic shapes and technical parts.")),
		mustService(NewService("postprocessing", "Post-procesado", CategoryFinishing, 25, PerPiece, ServiceRate,
			nil, "Sanding, priming and painting of printed parts.")),
	}
}

// DefaultMaterials is the material list a fresh installation starts with. Prices are per gram.
func DefaultMaterials() []Material {
	return []Material{
		mustMaterial(NewMaterial("pla", "PLA Premium", FDM, 15, Available,
			WithDensity(1.24), WithNozzleTemperature(190, 220), WithBedTemperature(0, 60))),
		mustMaterial(NewMaterial("abs", "ABS Industrial", FDM, 18, Available,
			WithDensity(1.04), WithNozzleTemperature(220, 250), WithBedTemperature(60, 100))),
		mustMaterial(NewMaterial("petg", "PETG Transparente", FDM, 17, Available,
			WithDensity(1.27), WithNozzleTemperature(220, 250), WithBedTemperature(70, 80))),
		mustMaterial(NewMaterial("tpu", "TPU Flexible", FDM, 22, LowStock,
			WithDensity(1.20), WithNozzleTemperature(210, 230), WithBedTemperature(0, 50))),
		mustMaterial(NewMaterial("resin", "Resina UV Standard", SLA, 35, Available,
			WithDensity(1.10))),
	}
}

func mustService(s Service, err error) Service {
	if err != nil {
		panic(err)
	}
	return s
}

func mustMaterial(m Material, err error) Material {
	if err != nil {
		panic(err)
	}
	return m
}
