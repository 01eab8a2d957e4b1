package generation

// Placeholder returns the fixed text used when no live completion is
// available. Both texts parse cleanly: the lesson keeps the seven-section
// outline and the analysis carries every heading with a 5/10 grade.
func Placeholder(p Purpose) string {
	if p == PurposeAnalysis {
		return placeholderAnalysis
	}
	return placeholderLesson
}

const placeholderLesson = `# Placeholder Lesson

## 1. Introduction and Overview
This lesson is placeholder text. The text-generation service is not configured or did not respond, so no real explanation was produced. Set GROQ_API_KEY (or another provider key) and request the lesson again.

## 2. Fundamental Concepts
- Core idea one: the basic vocabulary of the topic
- Core idea two: how the building blocks relate
- Core idea three: what later material depends on

### 2.1 Key Definitions
Definitions appear here when a live lesson is generated.

### 2.2 Historical Context
Background appears here when a live lesson is generated.

## 3. Detailed Analysis
### 3.1 First Analysis Point
A detailed point appears here when a live lesson is generated.

### 3.2 Second Analysis Point
A second point appears here when a live lesson is generated.

### 3.3 Third Analysis Point
A third point appears here when a live lesson is generated.

## 4. Practical Applications and Examples
Worked examples appear here when a live lesson is generated.

## 5. Advanced Concepts
Advanced material appears here when a live lesson is generated.

## 6. Current Research and Developments
Recent developments appear here when a live lesson is generated.

## 7. Conclusion and Key Takeaways
This placeholder only shows the shape of a lesson. Configure a provider to get real content.
`

const placeholderAnalysis = `## STRENGTHS
- You submitted a response, which is the first step
- Your response was received and stored
- Placeholder feedback: no real evaluation was performed

## FALSE POINTS
- No incorrect statements were identified because no real analysis ran
- Configure a text-generation provider for a detailed critique

## MISSING POINTS
- A live analysis would compare your response against the lesson
- Key concepts would be checked one by one
- Gaps in coverage would be listed here

## EXAMPLES QUALITY
Placeholder feedback: example quality was not evaluated.

## AREAS LACKING
- Depth could not be assessed
- Accuracy could not be assessed
- Clarity could not be assessed

## IMPROVEMENTS
- Configure GROQ_API_KEY or another provider key
- Submit your response again once the provider is available
- Meanwhile, review the lesson outline

## GRADE
Grade: 5/10

## GRADE EXPLANATION
This is a placeholder grade. No real evaluation was performed because the text-generation service was unavailable.

## DETAILED FEEDBACK
Your response was accepted, but it has not been evaluated. Once a provider is configured, this section will contain specific feedback on accuracy, completeness, depth, examples and clarity.

## NEXT STEPS
Configure a text-generation provider and resubmit your response for a real evaluation.
`
