package lookup

func modalityEntries() map[string]string {
	return map[string]string{
		"ORDINARIA":                           "ORDINARIO",
		"ORDINARIO":                           "ORDINARIO",
		"EXAMEN ORDINARIO":                    "ORDINARIO",
		"MODALIDAD ORDINARIA":                 "ORDINARIO",
		"CEPRE":                               "CEPRE",
		"CEPREUNCP":                           "CEPRE",
		"CENTRO PREUNIVERSITARIO":             "CEPRE",
		"PRIMEROS PUESTOS":                    "PRIMEROS PUESTOS",
		"PRIMEROS Y SEGUNDOS PUESTOS":         "PRIMEROS PUESTOS",
		"1ER Y 2DO PUESTO":                    "PRIMEROS PUESTOS",
		"TRASLADO EXTERNO":                    "TRASLADO EXTERNO",
		"TRASLADO INTERNO":                    "TRASLADO INTERNO",
		"GRADUADOS Y TITULADOS":               "GRADUADOS Y TITULADOS",
		"GRADUADOS O TITULADOS":               "GRADUADOS Y TITULADOS",
		"DEPORTISTAS CALIFICADOS":             "DEPORTISTAS CALIFICADOS",
		"DEPORTISTA CALIFICADO":               "DEPORTISTAS CALIFICADOS",
		"PERSONAS CON DISCAPACIDAD":           "PERSONAS CON DISCAPACIDAD",
		"DISCAPACITADOS":                      "PERSONAS CON DISCAPACIDAD",
		"VICTIMAS DEL TERRORISMO":             "VÍCTIMAS DEL TERRORISMO",
		"VÍCTIMAS DEL TERRORISMO":             "VÍCTIMAS DEL TERRORISMO",
		"COMUNIDADES NATIVAS":                 "COMUNIDADES NATIVAS",
		"COMUNIDADES NATIVAS Y CAMPESINAS":    "COMUNIDADES NATIVAS",
		"PLAN INTEGRAL DE REPARACIONES":       "PLAN INTEGRAL DE REPARACIONES",
		"PIR":                                 "PLAN INTEGRAL DE REPARACIONES",
		"CONVENIO ANDRES BELLO":               "CONVENIO ANDRÉS BELLO",
		"HIJOS DE DOCENTES Y ADMINISTRATIVOS": "HIJOS DE TRABAJADORES",
	}
}

type careerGroup struct {
	canonical string
	faculty   string
	area      string
	aliases   []string
}

func careerGroups() []careerGroup {
	return []careerGroup{
		{"INGENIERÍA DE SISTEMAS", "FACULTAD DE INGENIERÍA DE SISTEMAS", "A",
			[]string{"Ingeniería de Sistemas", "INGENIERIA DE SISTEMAS", "Ingenieria de Sistemas", "ING. DE SISTEMAS"}},
		{"INGENIERÍA CIVIL", "FACULTAD DE INGENIERÍA CIVIL", "A",
			[]string{"Ingeniería Civil", "INGENIERIA CIVIL", "Ingenieria Civil", "ING. CIVIL"}},
		{"INGENIERÍA MECÁNICA", "FACULTAD DE INGENIERÍA MECÁNICA", "A",
			[]string{"Ingeniería Mecánica", "INGENIERIA MECANICA", "Ingenieria Mecanica"}},
		{"INGENIERÍA ELÉCTRICA Y ELECTRÓNICA", "FACULTAD DE INGENIERÍA ELÉCTRICA Y ELECTRÓNICA", "A",
			[]string{"Ingeniería Eléctrica y Electrónica", "INGENIERIA ELECTRICA Y ELECTRONICA", "Ingenieria Electrica y Electronica"}},
		{"INGENIERÍA METALÚRGICA Y DE MATERIALES", "FACULTAD DE INGENIERÍA METALÚRGICA Y DE MATERIALES", "A",
			[]string{"Ingeniería Metalúrgica y de Materiales", "INGENIERIA METALURGICA Y DE MATERIALES", "Ingeniería Metalúrgica"}},
		{"INGENIERÍA QUÍMICA", "FACULTAD DE INGENIERÍA QUÍMICA", "A",
			[]string{"Ingeniería Química", "INGENIERIA QUIMICA", "Ingenieria Quimica"}},
		{"INGENIERÍA QUÍMICA AMBIENTAL", "FACULTAD DE INGENIERÍA QUÍMICA", "A",
			[]string{"Ingeniería Química Ambiental", "INGENIERIA QUIMICA AMBIENTAL"}},
		{"INGENIERÍA DE MINAS", "FACULTAD DE INGENIERÍA DE MINAS", "A",
			[]string{"Ingeniería de Minas", "INGENIERIA DE MINAS", "Ingenieria de Minas"}},
		{"ARQUITECTURA", "FACULTAD DE ARQUITECTURA", "A",
			[]string{"Arquitectura"}},
		{"AGRONOMÍA", "FACULTAD DE AGRONOMÍA", "A",
			[]string{"Agronomía", "AGRONOMIA", "Ingeniería Agronómica", "INGENIERIA AGRONOMICA"}},
		{"INGENIERÍA FORESTAL Y AMBIENTAL", "FACULTAD DE CIENCIAS FORESTALES Y DEL AMBIENTE", "A",
			[]string{"Ingeniería Forestal y Ambiental", "INGENIERIA FORESTAL Y AMBIENTAL", "Ciencias Forestales y del Ambiente"}},
		{"INGENIERÍA EN INDUSTRIAS ALIMENTARIAS", "FACULTAD DE INGENIERÍA EN INDUSTRIAS ALIMENTARIAS", "A",
			[]string{"Ingeniería en Industrias Alimentarias", "INGENIERIA EN INDUSTRIAS ALIMENTARIAS", "Industrias Alimentarias"}},
		{"ZOOTECNIA", "FACULTAD DE ZOOTECNIA", "A",
			[]string{"Zootecnia"}},
		{"MEDICINA HUMANA", "FACULTAD DE MEDICINA HUMANA", "B",
			[]string{"Medicina Humana", "Medicina"}},
		{"ENFERMERÍA", "FACULTAD DE ENFERMERÍA", "B",
			[]string{"Enfermería", "ENFERMERIA", "Enfermeria"}},
		{"DERECHO Y CIENCIAS POLÍTICAS", "FACULTAD DE DERECHO Y CIENCIAS POLÍTICAS", "C",
			[]string{"Derecho y Ciencias Políticas", "DERECHO Y CIENCIAS POLITICAS", "Derecho"}},
		{"SOCIOLOGÍA", "FACULTAD DE SOCIOLOGÍA", "C",
			[]string{"Sociología", "SOCIOLOGIA", "Sociologia"}},
		{"TRABAJO SOCIAL", "FACULTAD DE TRABAJO SOCIAL", "C",
			[]string{"Trabajo Social"}},
		{"ANTROPOLOGÍA", "FACULTAD DE ANTROPOLOGÍA", "C",
			[]string{"Antropología", "ANTROPOLOGIA", "Antropologia"}},
		{"CIENCIAS DE LA COMUNICACIÓN", "FACULTAD DE CIENCIAS DE LA COMUNICACIÓN", "C",
			[]string{"Ciencias de la Comunicación", "CIENCIAS DE LA COMUNICACION", "Ciencias de la Comunicacion"}},
		{"EDUCACIÓN INICIAL", "FACULTAD DE EDUCACIÓN", "C",
			[]string{"Educación Inicial", "EDUCACION INICIAL", "Educacion Inicial"}},
		{"EDUCACIÓN PRIMARIA", "FACULTAD DE EDUCACIÓN", "C",
			[]string{"Educación Primaria", "EDUCACION PRIMARIA", "Educacion Primaria"}},
		{"EDUCACIÓN FILOSOFÍA, PSICOLOGÍA Y CIENCIAS SOCIALES", "FACULTAD DE EDUCACIÓN", "C",
			[]string{"Educación Filosofía, Psicología y Ciencias Sociales", "EDUCACION FILOSOFIA, PSICOLOGIA Y CIENCIAS SOCIALES"}},
		{"ADMINISTRACIÓN DE EMPRESAS", "FACULTAD DE ADMINISTRACIÓN DE EMPRESAS", "D",
			[]string{"Administración de Empresas", "ADMINISTRACION DE EMPRESAS", "Administracion de Empresas", "Administración"}},
		{"CONTABILIDAD", "FACULTAD DE CONTABILIDAD", "D",
			[]string{"Contabilidad", "Contabilidad y Finanzas"}},
		{"ECONOMÍA", "FACULTAD DE ECONOMÍA", "D",
			[]string{"Economía", "ECONOMIA", "Economia"}},
	}
}

// groupEntries flattens career groups into the career, faculty and area
// tables. Faculty and area are keyed on the canonical career name; later
// groups override earlier ones.
func groupEntries(groups []careerGroup) (career, faculty, area map[string]string) {
	career, faculty, area = map[string]string{}, map[string]string{}, map[string]string{}
	for _, g := range groups {
		career[g.canonical] = g.canonical
		for _, alias := range g.aliases {
			career[alias] = g.canonical
		}
		if g.faculty != "" {
			faculty[g.canonical] = g.faculty
		}
		if g.area != "" {
			area[g.canonical] = g.area
		}
	}
	return career, faculty, area
}
