package models

// Rubric tables are package-private and exposed through lookup functions so
// callers cannot mutate them.

var levelLabels = map[PerformanceLevel]string{
	LevelI:   "Inicio",
	LevelII:  "En proceso",
	LevelIII: "Satisfactorio",
	LevelIV:  "Destacado",
}

// Label returns the qualitative name of the level, or "" when unrecognised.
func (l PerformanceLevel) Label() string {
	return levelLabels[l]
}

var levelColors = map[PerformanceLevel]string{
	LevelIV:  "2E7D32",
	LevelIII: "1976D2",
	LevelII:  "F57C00",
	LevelI:   "D32F2F",
}

// UnratedColor is used for ratings outside I..IV.
const UnratedColor = "757575"

// LevelColor returns the badge color (hex RGB) for a rating.
func LevelColor(level PerformanceLevel) string {
	if color, ok := levelColors[level]; ok {
		return color
	}
	return UnratedColor
}

var levelDescriptions = map[PerformanceLevel]string{
	LevelI:   "No alcanzan a demostrar los aspectos mínimos del desempeño.",
	LevelII:  "Se observa tanto logros como oportunidades de mejora que caracterizan al docente en este nivel.",
	LevelIII: "Se observa la mayoría de conductas deseadas en el desempeño del docente.",
	LevelIV:  "Se observa todas las conductas deseadas en el desempeño del docente.",
}

// LevelDescription returns the general meaning of a level.
func LevelDescription(level PerformanceLevel) string {
	return levelDescriptions[level]
}

var performanceTitles = map[PerformanceSlot]string{
	SlotEngagement:          "Involucra activamente a los estudiantes en el proceso de aprendizaje",
	SlotCriticalThinking:    "Promueve el razonamiento, la creatividad y/o el pensamiento crítico",
	SlotFormativeAssessment: "Evalúa el progreso de los aprendizajes para retroalimentar",
	SlotRespectfulClimate:   "Propicia un ambiente de respeto y proximidad",
	SlotBehaviorRegulation:  "Regula positivamente el comportamiento de los estudiantes",
	SlotTechnologyUse:       "Uso de ayudas tecnológicas para la enseñanza aprendizaje",
}

// Title returns the display title of the slot.
func (s PerformanceSlot) Title() string {
	return performanceTitles[s]
}

var performanceDescriptions = map[PerformanceSlot]map[PerformanceLevel]string{
	SlotEngagement: {
		LevelI:   "El docente ofrece muy poca oportunidad de participación del estudiante, dictando solo las diapositivas.",
		LevelII:  "El docente explica las diapositivas resaltando con un lápiz digital, involucrando a los estudiantes a través del chat",
		LevelIII: "El docente involucra a la gran mayoría de los estudiantes en el aprendizaje y expone con ayudas gráficas, las diapositivas.",
		LevelIV:  "El docente involucra activamente a casi todos los estudiantes, preguntando personalizadamente, al azar. Expone con ayuda de graficadores, las diapositivas.",
	},
	SlotCriticalThinking: {
		LevelI:   "El docente propone actividades o establece interacciones que estimulan únicamente el aprendizaje reproductivo memorístico.",
		LevelII:  "El docente intenta promover el razonamiento, la creatividad y/o el pensamiento crítico al menos en una ocasión, pero no lo logra.",
		LevelIII: "El docente promueve efectivamente el razonamiento, la creatividad y/o el pensamiento crítico al menos en una ocasión.",
		LevelIV:  "El docente promueve efectivamente el razonamiento, la creatividad y/o el pensamiento crítico en la sesión, en su conjunto.",
	},
	SlotFormativeAssessment: {
		LevelI:   "El docente no monitorea, o ante las respuestas de los estudiantes, el docente da retroalimentación incorrecta o no da retroalimentación.",
		LevelII:  "El docente monitorea activamente a los estudiantes, pero solo les brinda retroalimentación elemental.",
		LevelIII: "El docente monitorea activamente a los estudiantes, y les brinda retroalimentación descriptiva.",
		LevelIV:  "El docente monitorea activamente a los estudiantes y les brinda -al menos en una ocasión, en la sesión, retroalimentación por descubrimiento o reflexión.",
	},
	SlotRespectfulClimate: {
		LevelI:   "Si hay faltas de respeto entre los estudiantes, el docente no interviene (o ignora el hecho). O el docente, en alguna ocasión, falta el respeto a uno o más estudiantes.",
		LevelII:  "El docente es siempre respetuoso con los estudiantes, aunque frío o distante. Además, interviene si nota faltas de respeto al docente.",
		LevelIII: "El docente es siempre respetuoso con los estudiantes, es cordial y les transmite calidez. Siempre se muestra empático con sus necesidades.",
		LevelIV:  "El docente es siempre respetuoso con los estudiantes y muestra consideración hacia sus perspectivas. Es cordial con ellos y les transmite calidez. Siempre es empático.",
	},
	SlotBehaviorRegulation: {
		LevelI:   "Para prevenir o controlar el comportamiento inapropiado en el aula, el docente utiliza predominantemente mecanismos de control externo -negativos.",
		LevelII:  "El docente utiliza predominantemente mecanismos formativos y nunca de maltrato para regular el comportamiento de los estudiantes, pero es poco eficaz.",
		LevelIII: "El docente utiliza predominantemente mecanismos formativos -positivos- y nunca de maltrato para regular el comportamiento de los estudiantes de manera eficaz.",
		LevelIV:  "El docente siempre utiliza mecanismos formativos -positivos- para regular el comportamiento de los estudiantes de manera eficaz.",
	},
	SlotTechnologyUse: {
		LevelI:   "El docente no añade tecnologías o muros de interacción con sus estudiantes, no permitiendo de esta manera la participación de sus estudiantes.",
		LevelII:  "El docente utiliza al menos alguna tecnología como muros Padlet, en una ocación, para interactuar con sus estudiantes a través de la virtualidad.",
		LevelIII: "El docente trabaja con pizarras interactivas para permitir la mayor participación de estudiantes, usando los muros de interacción Padlet, al menos más de una ocación.",
		LevelIV:  "El docente siempre utiliza pizarras interactivas y hace que sus estudiantes constantemente envíen respuestas a través de muros de participación cuando les pregunta.",
	},
}

// PerformanceDescription looks up the catalog text for a slot at a level.
// Unknown slots or levels yield "".
func PerformanceDescription(slot PerformanceSlot, level PerformanceLevel) string {
	return performanceDescriptions[slot][level]
}

// RubricLevel is a read-only view of one level of the rubric.
type RubricLevel struct {
	Level       PerformanceLevel `json:"level"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Color       string           `json:"color"`
}

// RubricPerformance is a read-only view of one performance slot.
type RubricPerformance struct {
	Slot         PerformanceSlot             `json:"slot"`
	Key          string                      `json:"key"`
	Title        string                      `json:"title"`
	Descriptions map[PerformanceLevel]string `json:"descriptions"`
}

// Rubric is the full catalog served to clients rendering the evaluation form.
type Rubric struct {
	Levels       []RubricLevel       `json:"levels"`
	Performances []RubricPerformance `json:"performances"`
}

// BuildRubric returns a fresh copy of the rubric catalog.
func BuildRubric() Rubric {
	rubric := Rubric{}
	for _, level := range PerformanceLevels {
		rubric.Levels = append(rubric.Levels, RubricLevel{
			Level:       level,
			Label:       level.Label(),
			Description: LevelDescription(level),
			Color:       LevelColor(level),
		})
	}
	for _, slot := range PerformanceSlots {
		descriptions := make(map[PerformanceLevel]string, len(PerformanceLevels))
		for _, level := range PerformanceLevels {
			descriptions[level] = PerformanceDescription(slot, level)
		}
		rubric.Performances = append(rubric.Performances, RubricPerformance{
			Slot:         slot,
			Key:          slot.Key(),
			Title:        slot.Title(),
			Descriptions: descriptions,
		})
	}
	return rubric
}
