// Package seed loads the default accounts and the best-practice catalog.
package seed

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HammadCopilot/star-video-review/internal/logger"
	"github.com/HammadCopilot/star-video-review/internal/models"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.Role
}

var defaultUsers = []seedUser{
	{Email: "admin@star.com", Password: "Admin123!", FirstName: "System", LastName: "Admin", Role: models.RoleAdmin},
	{Email: "reviewer@star.com", Password: "Reviewer123!", FirstName: "Demo", LastName: "Reviewer", Role: models.RoleReviewer},
}

type seedPractice struct {
	Title       string
	Description string
	Criteria    string
	IsPositive  bool
}

// The catalog follows the STAR teaching framework: each category lists
// positive practices first, then the negative patterns reviewers flag.
var catalog = map[models.PracticeCategory][]seedPractice{
	models.CategoryDiscreteTrial: {
		{
			Title:       "Consistent Cue Usage",
			Description: "The same instructional cue is used for each repetition of a target.",
			Criteria:    "Cue wording and delivery stay identical across trials of the same program.",
			IsPositive:  true,
		},
		{
			Title:       "Immediate Re-stating Before Praise",
			Description: "The teacher re-states the cue or target immediately before delivering praise.",
			Criteria:    "Praise is paired with a restatement of what the student did correctly.",
			IsPositive:  true,
		},
		{
			Title:       "Error Correction Procedure",
			Description: "Errors are followed by the correct model, a re-presentation, and an independent opportunity.",
			Criteria:    "Model, prompt, and independent retry occur in sequence after an error.",
			IsPositive:  true,
		},
		{
			Title:       "Reinforces Hands Down and Sitting",
			Description: "Ready behaviors such as hands down and sitting are reinforced between trials.",
			Criteria:    "The student receives reinforcement for calm, ready posture.",
			IsPositive:  true,
		},
		{
			Title:       "Clear Expressive Cue",
			Description: "Cues are short, clearly spoken, and free of extra language.",
			Criteria:    "Each cue can be repeated verbatim by an observer.",
			IsPositive:  true,
		},
		{
			Title:       "Reinforcer Only for Independent Response",
			Description: "The strongest reinforcer is reserved for independent correct responses.",
			Criteria:    "Prompted responses receive lesser reinforcement than independent ones.",
			IsPositive:  true,
		},
		{
			Title:       "Inconsistent Cue",
			Description: "Cue wording changes between repetitions of the same target.",
			Criteria:    "The same target is presented with different phrasings.",
			IsPositive:  false,
		},
		{
			Title:       "Missing Re-statement",
			Description: "Praise is delivered without re-stating what the student did.",
			Criteria:    "Generic praise with no reference to the target behavior.",
			IsPositive:  false,
		},
		{
			Title:       "Incorrect Error Correction",
			Description: "Errors are ignored or corrected without re-presenting the trial.",
			Criteria:    "No model or retry opportunity follows an incorrect response.",
			IsPositive:  false,
		},
		{
			Title:       "Excessive Language",
			Description: "Extra talk surrounds the cue and dilutes the instruction.",
			Criteria:    "Instructions are embedded in long sentences or repeated chatter.",
			IsPositive:  false,
		},
		{
			Title:       "Poor Positioning",
			Description: "The teacher's position blocks materials or loses the student's attention.",
			Criteria:    "Teacher is not at the student's level or materials are out of reach.",
			IsPositive:  false,
		},
		{
			Title:       "Delayed Reinforcement",
			Description: "Reinforcement arrives too long after the correct response.",
			Criteria:    "More than a couple of seconds pass between response and reinforcer.",
			IsPositive:  false,
		},
		{
			Title:       "Materials Not Ready",
			Description: "Trial materials are gathered mid-session, breaking instructional momentum.",
			Criteria:    "The teacher pauses trials to find or prepare materials.",
			IsPositive:  false,
		},
	},
	models.CategoryPivotalResponse: {
		{
			Title:       "Following Student Lead",
			Description: "Teaching targets follow the activity the student chose.",
			Criteria:    "The teacher joins and extends the student's chosen play.",
			IsPositive:  true,
		},
		{
			Title:       "Language Trial Execution",
			Description: "Language opportunities are embedded in the ongoing activity.",
			Criteria:    "A clear opportunity, response, and natural consequence occur within play.",
			IsPositive:  true,
		},
		{
			Title:       "Play Trial with Modeling",
			Description: "The teacher models play actions and invites imitation.",
			Criteria:    "Modeled action is visible, simple, and followed by a student turn.",
			IsPositive:  true,
		},
		{
			Title:       "Engaging Toy Selection",
			Description: "Available toys match the student's interests and motivation.",
			Criteria:    "The student approaches and sustains engagement with the materials.",
			IsPositive:  true,
		},
		{
			Title:       "Natural Reinforcement",
			Description: "The reinforcer is the natural consequence of the response.",
			Criteria:    "Requesting a toy produces the toy, not an unrelated reward.",
			IsPositive:  true,
		},
		{
			Title:       "Multiple Cues",
			Description: "Targets require attention to multiple features of the materials.",
			Criteria:    "Cues combine attributes such as color and object name.",
			IsPositive:  true,
		},
		{
			Title:       "Turn Taking",
			Description: "Teacher and student alternate turns within the activity.",
			Criteria:    "Clear my-turn/your-turn structure is maintained.",
			IsPositive:  true,
		},
		{
			Title:       "Not Following Child Lead",
			Description: "The teacher redirects away from the student's interest to a preset agenda.",
			Criteria:    "Student-initiated play is interrupted or ignored.",
			IsPositive:  false,
		},
		{
			Title:       "Missing Language Opportunities",
			Description: "Natural moments to require language pass without a trial.",
			Criteria:    "Desired items are handed over without a communication opportunity.",
			IsPositive:  false,
		},
		{
			Title:       "Poor Toy Selection",
			Description: "Materials do not motivate the student.",
			Criteria:    "The student avoids or quickly abandons the offered toys.",
			IsPositive:  false,
		},
		{
			Title:       "Unclear Modeling",
			Description: "Modeled actions are too fast, complex, or out of the student's view.",
			Criteria:    "The student cannot see or reproduce the modeled action.",
			IsPositive:  false,
		},
		{
			Title:       "Low Energy/Affect",
			Description: "Flat teacher affect reduces the student's motivation to engage.",
			Criteria:    "Minimal animation, enthusiasm, or shared affect during play.",
			IsPositive:  false,
		},
	},
	models.CategoryFunctionalRoutines: {
		{
			Title:       "Visual Supports with Minimal Language",
			Description: "Routine steps are cued with visuals rather than verbal direction.",
			Criteria:    "Visual schedule or cues carry the routine with little teacher talk.",
			IsPositive:  true,
		},
		{
			Title:       "Prompting from Behind",
			Description: "Physical prompts come from behind the student to keep focus on the task.",
			Criteria:    "The teacher positions behind or beside, not between student and task.",
			IsPositive:  true,
		},
		{
			Title:       "Reverse Chaining",
			Description: "The student independently completes the final steps of the routine first.",
			Criteria:    "Teacher assistance fades from the end of the chain backwards.",
			IsPositive:  true,
		},
		{
			Title:       "Reinforcement During Routine",
			Description: "Reinforcement is delivered within the routine, tied to step completion.",
			Criteria:    "Praise or access follows completed steps without stopping the routine.",
			IsPositive:  true,
		},
		{
			Title:       "Visual Schedules for Transitions",
			Description: "Transitions between activities are mediated by a visual schedule.",
			Criteria:    "The student checks or manipulates the schedule at each transition.",
			IsPositive:  true,
		},
		{
			Title:       "Consistent Routine Structure",
			Description: "The routine follows the same step sequence every time.",
			Criteria:    "Steps occur in a stable, predictable order.",
			IsPositive:  true,
		},
		{
			Title:       "Appropriate Wait Time",
			Description: "The student is given time to initiate each step before a prompt.",
			Criteria:    "A deliberate pause precedes any prompt.",
			IsPositive:  true,
		},
		{
			Title:       "Fading Prompts Appropriately",
			Description: "Prompt intensity decreases as the student gains independence.",
			Criteria:    "Less intrusive prompts are used across repetitions of a step.",
			IsPositive:  true,
		},
		{
			Title:       "Excessive Language",
			Description: "Verbal directions override the visual supports.",
			Criteria:    "The teacher narrates or directs each step verbally.",
			IsPositive:  false,
		},
		{
			Title:       "Prompting from Front",
			Description: "The teacher prompts from in front, drawing attention away from the task.",
			Criteria:    "The teacher's face, not the task, becomes the cue.",
			IsPositive:  false,
		},
		{
			Title:       "Not Using Reverse Chaining",
			Description: "Assistance is front-loaded so the student never finishes independently.",
			Criteria:    "The teacher completes the final steps for the student.",
			IsPositive:  false,
		},
		{
			Title:       "Missing Visual Supports",
			Description: "The routine runs without schedules or visual cues.",
			Criteria:    "No visual materials are present for a multi-step routine.",
			IsPositive:  false,
		},
		{
			Title:       "Inconsistent Routine",
			Description: "Step order changes between runs of the routine.",
			Criteria:    "The same routine is executed differently across sessions.",
			IsPositive:  false,
		},
		{
			Title:       "No Wait Time",
			Description: "Prompts are delivered immediately, pre-empting independent responses.",
			Criteria:    "No pause between the natural cue and the prompt.",
			IsPositive:  false,
		},
		{
			Title:       "Over-Prompting",
			Description: "Prompts are more intrusive than the student needs.",
			Criteria:    "Full physical guidance is used where a gesture would do.",
			IsPositive:  false,
		},
	},
}

// Run seeds default users and the practice catalog. It is idempotent:
// existing users and practices are left untouched.
func Run(db *gorm.DB) error {
	log := logger.Get()

	for _, u := range defaultUsers {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Email:     u.Email,
			Password:  string(hash),
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Role:      u.Role,
			IsActive:  true,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		log.Infow("seeded user", "email", u.Email, "role", u.Role)
	}

	for category, practices := range catalog {
		for order, p := range practices {
			var count int64
			if err := db.Model(&models.BestPractice{}).
				Where("category = ? AND title = ?", category, p.Title).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			practice := &models.BestPractice{
				Category:     category,
				Title:        p.Title,
				Description:  p.Description,
				Criteria:     p.Criteria,
				IsPositive:   p.IsPositive,
				DisplayOrder: order + 1,
			}
			if err := db.Create(practice).Error; err != nil {
				return err
			}
		}
		log.Infow("seeded practice catalog", "category", category, "practices", len(practices))
	}

	return nil
}
