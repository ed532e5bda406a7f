package generator

import (
	"fmt"
	"unicode"

	"storyforge/internal/models"
)

// questPlaces describes each setting the way the quest template's narrator
// introduces it.
var questPlaces = map[string]string{
	"Enchanted Forest":       "a magical forest where the trees whispered secrets",
	"Outer Space":            "a sparkling galaxy full of colorful planets",
	"Underwater Kingdom":     "a shimmering kingdom beneath the waves",
	"Magical School":         "a wonderful school where anything was possible",
	"Neighborhood Adventure": "their very own neighborhood, which held more magic than anyone knew",
	"Dinosaur World":         "a land where friendly dinosaurs still roamed",
	"Pirate Ship":            "the deck of the most magnificent pirate ship ever built",
}

// questTreasures gives some settings their own treasure name for the title.
var questTreasures = map[string]string{
	"Pirate Ship":        "Lost Treasure",
	"Outer Space":        "Starlight Crystal",
	"Underwater Kingdom": "Ocean Crystal",
	"Dinosaur World":     "Ancient Crystal",
}

// capitalizeFirst uppercases the first rune of a word for mid-sentence
// proper-noun use ("The Great Dinosaurs Crystal").
func capitalizeFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// renderQuest fills the quest template: the hero follows a golden map to a
// troubled magical place and restores it. Lesson keywords steer the middle
// pages toward growth, empathy, or teamwork variants.
func renderQuest(s slots) Rendered {
	n, f := s.name, s.companion
	place := questPlaces[s.setting]

	growth := s.teaches("growth", "resilience")
	empathy := s.teaches("empathy", "kindness")
	teamwork := s.teaches("teamwork", "sharing")
	curious := s.teaches("curiosity", "creativity")

	pages := make([]models.StoryPage, 0, TemplatePageCount)

	// Page 1: the golden map appears.
	var p1 string
	if s.young {
		p1 = fmt.Sprintf("Once upon a time, there was a wonderful child named %s. %s loved %s more than anything! One sunny morning, %s woke up to find a glowing golden map on the pillow. It showed the way to %s!", n, n, s.interest, n, place)
	} else {
		p1 = fmt.Sprintf("%s had always been fascinated by %s. So when a mysterious golden map appeared on the doorstep one morning, with a trail leading to %s, %s knew this was the beginning of something extraordinary.", n, s.interest, place, n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              1,
		Text:                    p1,
		IllustrationDescription: fmt.Sprintf("%s discovering a glowing golden map", n),
		MoodColor:               s.color(0),
	})

	// Page 2: setting off, with or without the companion.
	var p2 string
	if s.hasComp {
		if s.young {
			p2 = fmt.Sprintf("\"Let's go on an adventure!\" said %s. %s came along too! Together, they followed the sparkly path. ", n, f)
			if curious {
				p2 += fmt.Sprintf("%s stopped to look at every interesting thing. \"I wonder what that is?\" %s kept asking.", n, n)
			} else {
				p2 += "They skipped and laughed the whole way."
			}
		} else {
			p2 = fmt.Sprintf("%s grabbed the map and called %s. \"You have to see this,\" %s said. %s grinned. \"Let's go!\" ", n, f, n, f)
			if curious {
				p2 += fmt.Sprintf("Along the way, %s couldn't help asking questions about everything. \"Why does that flower glow?\"", n)
			} else {
				p2 += "Together, they set off into the unknown."
			}
		}
	} else {
		if s.young {
			p2 = fmt.Sprintf("\"I can do this!\" said %s bravely. %s packed a little bag and followed the sparkly path. ", n, n)
			if curious {
				p2 += fmt.Sprintf("\"I wonder what I'll find?\" %s whispered with a big smile.", n)
			} else {
				p2 += "Every step was a new surprise!"
			}
		} else {
			p2 = fmt.Sprintf("%s took a deep breath and packed a small bag. The path ahead was full of mystery and wonder.", n)
		}
	}
	ill2 := fmt.Sprintf("%s following a sparkly golden path", n)
	if s.hasComp {
		ill2 = fmt.Sprintf("%s and %s following a sparkly golden path", n, f)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              2,
		Text:                    p2,
		IllustrationDescription: ill2,
		MoodColor:               s.color(1),
	})

	// Page 3: arrival and the problem.
	var p3 string
	if s.young {
		p3 = fmt.Sprintf("They arrived at %s! It was even more amazing than %s had imagined. Everything was connected to %s! But oh no — there was a big problem. The magical %s treasure was locked away, and nobody could figure out how to open it.", place, n, s.interest, s.interest2)
	} else {
		p3 = fmt.Sprintf("When they finally arrived at %s, %s gasped. It was breathtaking — and everything seemed connected to %s. But something was wrong. The Great %s Crystal, which kept the magic alive, had gone dark. Without it, the whole place was fading.", place, n, s.interest, capitalizeFirst(s.interest2))
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              3,
		Text:                    p3,
		IllustrationDescription: fmt.Sprintf("%s with a darkened crystal", s.setting),
		MoodColor:               s.color(2),
	})

	// Page 4: first attempts; growth-mindset variant when the lessons ask for it.
	var p4 string
	if growth {
		if s.young {
			p4 = fmt.Sprintf("%s tried to open the treasure. Push! Pull! Nothing worked. \"I can't do it,\" %s said sadly. But then %s had a thought: \"Wait — I can't do it YET. Let me try a different way!\" And %s started to think really hard.", n, n, n, n)
		} else {
			p4 = fmt.Sprintf("%s's first attempt to restore the crystal failed. And the second. %s felt frustrated. \"Maybe I'm not smart enough for this,\" %s muttered. But then something clicked: \"No — I just haven't figured it out YET. Every mistake is teaching me something.\" %s studied the problem with fresh eyes.", n, n, n, n)
		}
	} else {
		if s.young {
			p4 = fmt.Sprintf("%s looked at the locked treasure. It was a tricky puzzle! %s sat down and thought very carefully. \"If I break this big problem into tiny pieces, maybe I can solve it!\"", n, n)
		} else {
			p4 = fmt.Sprintf("The challenge seemed impossible at first. But %s sat down and studied the problem carefully. \"What if I break this into smaller pieces?\" %s thought. \"One step at a time.\"", n, n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              4,
		Text:                    p4,
		IllustrationDescription: fmt.Sprintf("%s thinking hard, looking determined", n),
		MoodColor:               s.color(3),
	})

	// Page 5: the creature encounter; empathy variant glows a crystal piece.
	var p5 string
	if empathy {
		if s.young {
			p5 = fmt.Sprintf("A little creature appeared, looking sad. \"What's wrong?\" asked %s gently. \"Everyone forgot about me,\" it sniffled. %s sat down next to it. \"I know how that feels. You matter, and I'm here now.\" The creature smiled, and something magical started to glow.", n, n)
		} else {
			with := "me"
			if s.hasComp {
				with = "us"
			}
			p5 = fmt.Sprintf("A small, shy creature emerged from the shadows, trembling. Others walked past, too busy. But %s knelt down. \"Hey, are you okay?\" The creature explained it had been left out, forgotten. %s listened — really listened — and said, \"I understand. Come with %s.\" As kindness flowed, a piece of the crystal began to glow.", n, n, with)
		}
	} else {
		if s.young {
			p5 = fmt.Sprintf("%s found a clue! A friendly creature showed %s a hidden path. \"Thank you!\" said %s. \"Being kind is the real magic,\" the creature replied with a wink.", n, n, n)
		} else {
			p5 = fmt.Sprintf("Exploring further, %s discovered a hidden passage. Inside was a riddle: \"The strongest force isn't strength — it's understanding.\" %s smiled. \"I think I know what to do.\"", n, n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              5,
		Text:                    p5,
		IllustrationDescription: fmt.Sprintf("%s showing kindness to a magical creature", n),
		MoodColor:               s.color(4),
	})

	// Page 6: the restoration work; teamwork variant recruits everyone.
	var p6 string
	if teamwork {
		if s.young {
			p6 = fmt.Sprintf("%s realized something important: \"I don't have to do everything alone!\" %s asked everyone to help. Each person was good at something different. ", n, n)
			if s.hasComp {
				p6 += fmt.Sprintf("%s was super clever. ", f)
			}
			p6 += "Together, they were unstoppable!"
		} else {
			p6 = fmt.Sprintf("%s realized: this wasn't a one-person job. \"Everyone has different strengths,\" %s said. \"If we work together, we can do what none of us could do alone.\" ", n, n)
			if s.hasComp {
				p6 += fmt.Sprintf("%s nodded eagerly. ", f)
			}
			p6 += "One by one, everyone contributed. The crystal glowed brighter with each act of teamwork."
		}
	} else {
		if s.young {
			p6 = fmt.Sprintf("Step by step, %s worked on the puzzle. First this piece, then that piece. \"I'm getting closer!\" %s cheered. The magic started coming back!", n, n)
		} else {
			p6 = fmt.Sprintf("%s worked methodically, applying each lesson learned. The crystal responded to genuine effort — not perfection, but persistence.", n)
		}
	}
	ill6 := fmt.Sprintf("%s and creatures working together", n)
	if s.hasComp {
		ill6 = fmt.Sprintf("%s, %s, and creatures working together", n, f)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              6,
		Text:                    p6,
		IllustrationDescription: ill6,
		MoodColor:               s.color(5),
	})

	// Page 7: the treasure opens.
	var p7 string
	if s.young {
		p7 = fmt.Sprintf("The treasure opened with a beautiful WHOOSH! Light and sparkles filled everywhere! %s had done it! All of %s came back to life. \"You did it, %s!\" everyone cheered. %s felt so proud and happy.", n, place, n, n)
	} else {
		p7 = fmt.Sprintf("With one final effort, the crystal blazed back to life. Light cascaded through %s, restoring every color, every sound. %s stood at the center, heart full. ", place, n)
		if s.hasComp {
			p7 += fmt.Sprintf("%s threw an arm around %s. \"We couldn't have done it without you.\"", f, n)
		} else {
			p7 += "The creatures gathered, grateful and amazed."
		}
		p7 += " It wasn't about being strongest or smartest. It was about never giving up, being kind, and believing in yourself."
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              7,
		Text:                    p7,
		IllustrationDescription: fmt.Sprintf("%s restored to full glory, celebration", s.setting),
		MoodColor:               s.color(6),
	})

	// Page 8: home again.
	var p8 string
	if s.young {
		p8 = fmt.Sprintf("%s went home with the biggest smile ever. ", n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s said, \"That was the best adventure EVER!\" ", f)
		}
		p8 += fmt.Sprintf("%s learned that being brave, being kind, and never giving up are the most powerful magic of all. The golden map was still there, ready for the next adventure. The End. 🌟", n)
	} else {
		p8 = fmt.Sprintf("As %s made it home, the golden map still tucked safely away, %s was different. Braver. Kinder. More curious. ", n, n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s texted: \"Same time tomorrow?\" ", f)
		}
		p8 += fmt.Sprintf("%s smiled at the stars. Tomorrow held new adventures. The End. 🌟", n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              8,
		Text:                    p8,
		IllustrationDescription: fmt.Sprintf("%s back home, looking at stars", n),
		MoodColor:               s.color(7),
	})

	treasure, ok := questTreasures[s.setting]
	if !ok {
		treasure = "Enchanted Crystal"
	}
	dedication := fmt.Sprintf("For %s — may you always stay curious, kind, and brave.", n)
	if s.hasComp {
		dedication = fmt.Sprintf("For %s and %s — may you always stay curious, kind, and brave.", n, f)
	}

	return Rendered{
		Title:      fmt.Sprintf("%s and the %s", n, treasure),
		Subtitle:   fmt.Sprintf("A %s adventure in %s", s.interest, s.setting),
		Dedication: dedication,
		Pages:      pages,
	}
}
