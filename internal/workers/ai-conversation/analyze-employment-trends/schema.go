// internal/workers/ai-conversation/analyze-employment-trends/schema.go
package analyzeemploymenttrends

// predictionSchema is the minimum shape a prediction document must have.
// Unknown keys are allowed so the model may add detail.
const predictionSchema = `{
  "type": "object",
  "required": ["comprehensive_analysis", "future_predictions", "policy_recommendations"],
  "properties": {
    "comprehensive_analysis": {"type": "string", "minLength": 1},
    "future_predictions": {
      "type": "object",
      "required": ["employment_metrics", "confidence_level"],
      "properties": {
        "employment_metrics": {
          "type": "object",
          "additionalProperties": {"type": ["number", "string"]}
        },
        "salary_predictions": {"type": "object"},
        "unemployment_duration": {"type": "object"},
        "employment_duration_trends": {"type": "object"},
        "confidence_level": {"type": "string"}
      }
    },
    "policy_recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["category", "title", "description", "priority"],
        "properties": {
          "category": {"type": "string"},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "priority": {"type": "string"},
          "timeline": {"type": "string"},
          "target_metric": {"type": "string"}
        }
      }
    }
  }
}`
