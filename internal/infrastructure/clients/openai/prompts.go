package openai

import (
	"fmt"

	"github.com/lifeline-ai/backend/internal/domain/entities"
)

const classifySystemPrompt = "You are an emergency medical classification AI. Analyze emergency situations and classify them accurately."

const scoreSystemPrompt = "You are an emergency medical severity assessment AI. Assess emergency severity accurately."

const generateSystemPrompt = "You are a first aid instruction generator. Provide clear, accurate, and actionable first aid steps."

const analyzeImageSystemPrompt = "You are an emergency medical image analysis AI. Analyze images of medical emergencies and describe what you see in detail, focusing on visible injuries, symptoms, or emergency situations."

const analyzeImageUserPrompt = "Analyze this emergency medical image. Describe what you see, including any visible injuries, symptoms, or emergency situations. Be specific and detailed."

func buildClassifyPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following emergency situation and classify it into one of these categories:
- medical: General medical emergencies (fever, pain, illness)
- trauma: Physical injuries (cuts, bruises, impacts)
- cardiac: Heart-related emergencies (chest pain, heart attack)
- respiratory: Breathing problems (choking, asthma, difficulty breathing)
- burn: Burns and scalds
- poisoning: Poisoning or toxic exposure
- fracture: Broken bones
- bleeding: Severe bleeding or wounds
- unknown: Cannot determine

Emergency description: %s

Respond in JSON format:
{
    "type": "category_name",
    "confidence": 0.0-1.0,
    "reasoning": "brief explanation"
}`, content)
}

func buildScorePrompt(emergencyType entities.EmergencyType, content string) string {
	return fmt.Sprintf(`Assess the severity of this emergency situation:

Emergency Type: %s
Description: %s

Rate the severity on a scale of 0.0 to 1.0:
- 0.8-1.0: CRITICAL - Life-threatening, immediate danger
- 0.6-0.79: HIGH - Serious, needs urgent attention
- 0.4-0.59: MODERATE - Needs medical attention but not immediately life-threatening
- 0.0-0.39: LOW - Minor issue, can wait or self-treat

Respond in JSON format:
{
    "severity": "critical|high|moderate|low",
    "score": 0.0-1.0,
    "reasoning": "brief explanation"
}`, emergencyType, content)
}

func buildGeneratePrompt(emergencyType entities.EmergencyType, severity entities.SeverityLevel) string {
	return fmt.Sprintf(`Generate step-by-step first aid instructions for a %s %s emergency.

Provide clear, actionable steps that a layperson can follow. Include:
- Immediate actions to take
- What NOT to do
- When to call emergency services
- How to monitor the situation

Respond in JSON format with an array of instructions:
{
    "instructions": [
        {
            "step": 1,
            "title": "Step title",
            "description": "Detailed step description",
            "duration": 30
        }
    ]
}`, severity, emergencyType)
}
