package triage

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifeline-ai/backend/internal/domain/entities"
	"github.com/lifeline-ai/backend/internal/domain/providers"
)

// instructionTemplate is one canned first aid step before numbering.
type instructionTemplate struct {
	Title       string
	Description string
	Duration    int // seconds; 0 means untimed
}

// TemplateGenerator serves first aid instructions from fixed per-category
// templates. Unknown categories fall back to a generic seek-help sequence, so
// the returned list is never empty.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a template-backed instruction generator.
func NewTemplateGenerator() providers.InstructionGenerator {
	return &TemplateGenerator{}
}

// Generate returns the template steps for the category, numbered from 1.
func (g *TemplateGenerator) Generate(ctx context.Context, emergencyType entities.EmergencyType, severity entities.SeverityLevel) ([]entities.FirstAidInstruction, error) {
	steps, ok := instructionTemplates[emergencyType]
	if !ok {
		steps = genericTemplate
	}

	out := make([]entities.FirstAidInstruction, 0, len(steps))
	for i, step := range steps {
		inst := entities.FirstAidInstruction{
			ID:          uuid.NewString(),
			Step:        i + 1,
			Title:       step.Title,
			Description: step.Description,
		}
		if step.Duration > 0 {
			d := step.Duration
			inst.Duration = &d
		}
		out = append(out, inst)
	}
	return out, nil
}

var instructionTemplates = map[entities.EmergencyType][]instructionTemplate{
	entities.EmergencyCardiac: {
		{
			Title:       "Call Emergency Services",
			Description: "Immediately call 911 or your local emergency number. This is a medical emergency.",
		},
		{
			Title:       "Check Responsiveness",
			Description: "Check if the person is conscious and responsive. Gently shake their shoulders and ask if they're okay.",
			Duration:    10,
		},
		{
			Title:       "Start CPR if Needed",
			Description: "If the person is unresponsive and not breathing, begin CPR. Place hands on center of chest and push hard and fast (100-120 compressions per minute).",
			Duration:    120,
		},
		{
			Title:       "Use AED if Available",
			Description: "If an Automated External Defibrillator (AED) is available, follow its instructions immediately.",
			Duration:    60,
		},
	},
	entities.EmergencyRespiratory: {
		{
			Title:       "Assess Breathing",
			Description: "Check if the person is breathing. Look for chest movement and listen for breath sounds.",
			Duration:    10,
		},
		{
			Title:       "Clear Airway",
			Description: "If the person is choking, perform the Heimlich maneuver. Stand behind them, place hands above navel, and give quick upward thrusts.",
			Duration:    30,
		},
		{
			Title:       "Call Emergency Services",
			Description: "If breathing doesn't improve, call 911 immediately.",
		},
		{
			Title:       "Monitor Condition",
			Description: "Continue monitoring breathing and consciousness until help arrives.",
		},
	},
	entities.EmergencyBleeding: {
		{
			Title:       "Apply Direct Pressure",
			Description: "Use a clean cloth or bandage to apply firm, direct pressure to the wound.",
			Duration:    300,
		},
		{
			Title:       "Elevate the Injury",
			Description: "If possible, raise the injured area above the level of the heart to reduce blood flow.",
		},
		{
			Title:       "Call Emergency Services",
			Description: "If bleeding is severe or doesn't stop, call 911 immediately.",
		},
		{
			Title:       "Keep Pressure Until Help Arrives",
			Description: "Continue applying pressure. Do not remove the bandage even if it becomes soaked with blood.",
		},
	},
	entities.EmergencyFracture: {
		{
			Title:       "Immobilize the Injury",
			Description: "Keep the injured area still. Do not try to realign bones or push a bone back in.",
		},
		{
			Title:       "Apply Ice",
			Description: "Apply a cold pack or ice wrapped in cloth to reduce swelling and pain.",
			Duration:    600,
		},
		{
			Title:       "Seek Medical Attention",
			Description: "Go to the emergency room or call 911 if the fracture is severe or the person cannot move.",
		},
		{
			Title:       "Monitor for Shock",
			Description: "Watch for signs of shock: pale skin, rapid pulse, dizziness. Keep the person calm and lying down.",
		},
	},
	entities.EmergencyBurn: {
		{
			Title:       "Cool the Burn",
			Description: "Hold the burned area under cool (not cold) running water for 10-20 minutes, or apply a cool, wet compress.",
			Duration:    1200,
		},
		{
			Title:       "Remove Tight Items",
			Description: "Remove rings, bracelets, or tight clothing from the burned area before it swells.",
			Duration:    30,
		},
		{
			Title:       "Cover the Burn",
			Description: "Cover the burn with a sterile, non-adhesive bandage or clean cloth.",
		},
		{
			Title:       "Seek Medical Attention",
			Description: "Call 911 for severe burns, or seek medical attention if the burn is larger than 3 inches or affects face, hands, or joints.",
		},
	},
}

var genericTemplate = []instructionTemplate{
	{
		Title:       "Assess the Situation",
		Description: "Carefully assess the emergency situation and ensure your own safety first.",
		Duration:    30,
	},
	{
		Title:       "Call Emergency Services",
		Description: "Call 911 or your local emergency number if the situation is serious.",
	},
	{
		Title:       "Provide Basic Care",
		Description: "Provide basic first aid care while waiting for professional help to arrive.",
	},
	{
		Title:       "Monitor the Person",
		Description: "Continue monitoring the person's condition and stay with them until help arrives.",
	},
}
