package generator

import (
	"fmt"

	"storyforge/internal/models"
)

// discoveryPlaces names the hidden world behind the bookshelf door for each
// setting.
var discoveryPlaces = map[string]string{
	"Enchanted Forest":       "the Whispering Woods",
	"Outer Space":            "the Cosmic Academy",
	"Underwater Kingdom":     "Coral City",
	"Magical School":         "Starlight Academy",
	"Neighborhood Adventure": "the Secret Garden next door",
	"Dinosaur World":         "the Valley of Giants",
	"Pirate Ship":            "the ship Stardancer",
}

// renderDiscovery fills the discovery template: a hidden door leads to a
// fading world whose Imagination Engine the hero must repair.
func renderDiscovery(s slots) Rendered {
	n, f := s.name, s.companion
	place, ok := discoveryPlaces[s.setting]
	if !ok {
		place = "a magical place"
	}

	firstPrinciples := s.teaches("first principles")
	patience := s.teaches("patience")
	courage := s.teaches("courage")
	gratitude := s.teaches("gratitude")
	growth := s.teaches("growth", "resilience")

	pages := make([]models.StoryPage, 0, TemplatePageCount)

	// Page 1: the tiny door.
	var p1 string
	if s.young {
		p1 = fmt.Sprintf("%s was a very special child who loved %s. One day, %s found a tiny door behind the bookshelf! \"Ooh! Where does it go?\" %s whispered.", n, s.interest, n, n)
	} else {
		p1 = fmt.Sprintf("Everyone knew %s loved %s. But what nobody knew was that %s had a secret — a tiny door behind the old bookshelf. Today, %s finally opened it.", n, s.interest, n, n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              1,
		Text:                    p1,
		IllustrationDescription: fmt.Sprintf("%s discovering a tiny door behind a bookshelf", n),
		MoodColor:               s.color(0),
	})

	// Page 2: stepping through.
	var p2 string
	if s.young {
		p2 = fmt.Sprintf("The door led to %s! %s couldn't believe it! ", place, n)
		if s.hasComp {
			p2 += fmt.Sprintf("\"%s! Come see this!\" %s called.", f, n)
		} else {
			p2 += fmt.Sprintf("%s took a deep breath and stepped inside.", n)
		}
	} else {
		p2 = fmt.Sprintf("Through the door lay %s. %s stepped through and felt the air change — warmer, alive with possibility. ", place, n)
		if s.hasComp {
			p2 += fmt.Sprintf("%s squeezed through right behind. \"This is incredible,\" %s breathed.", f, f)
		} else {
			p2 += "The door clicked shut, but this felt right."
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              2,
		Text:                    p2,
		IllustrationDescription: fmt.Sprintf("A breathtaking reveal of %s", s.setting),
		MoodColor:               s.color(1),
	})

	// Page 3: the keeper's plea.
	var p3 string
	if s.young {
		p3 = fmt.Sprintf("But the colors were fading! A wise old owl said, \"%s, the Imagination Engine is broken. Without it, all the stories disappear. Only someone who truly loves %s can fix it.\"", n, s.interest)
	} else {
		p3 = fmt.Sprintf("%s noticed parts of %s were flickering. A wise keeper approached. \"The Imagination Engine is failing. It runs on genuine wonder — but everyone's forgotten how to dream. We need someone who still sees magic in %s.\"", n, place, s.interest)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              3,
		Text:                    p3,
		IllustrationDescription: fmt.Sprintf("A wise keeper speaking to %s", n),
		MoodColor:               s.color(2),
	})

	// Page 4: approaching the Engine. First-principles variant wins over
	// patience when both lessons are present.
	var p4 string
	switch {
	case firstPrinciples:
		if s.young {
			p4 = fmt.Sprintf("%s went to see the Engine. It was very big! \"This is too hard,\" %s thought. But then: \"What if I look at just one part at a time?\" %s found the first broken piece!", n, n, n)
		} else {
			p4 = fmt.Sprintf("The Engine was massive. But instead of panicking, %s thought: \"Let me strip this to basics. What does this actually need?\" By breaking the problem into tiny questions, %s found the first broken gear.", n, n)
		}
	case patience:
		if s.young {
			p4 = fmt.Sprintf("%s started working on the Engine. It was slow. \"I want it fixed NOW,\" %s sighed. But the owl said, \"Good things take time.\" So %s took a deep breath and kept going patiently.", n, n, n)
		} else {
			p4 = fmt.Sprintf("Fixing the Engine wasn't quick. %s wanted instant results, but the keeper smiled. \"The best things come to those who persist with patience.\" %s slowed down and found details rushing would have missed.", n, n)
		}
	default:
		if s.young {
			p4 = fmt.Sprintf("%s started fixing the Engine. It took lots of tries! \"I won't give up!\" said %s with a determined smile.", n, n)
		} else {
			p4 = fmt.Sprintf("%s began working, trying one approach after another. Each failure taught something new.", n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              4,
		Text:                    p4,
		IllustrationDescription: fmt.Sprintf("%s examining the Imagination Engine", n),
		MoodColor:               s.color(3),
	})

	// Page 5: the last piece.
	var p5 string
	if courage {
		if s.young {
			p5 = fmt.Sprintf("To get the last part, %s had to cross the Wobbly Bridge. It was very scary! \"I'm scared,\" %s whispered. \"But brave people feel scared too — they just keep going anyway.\" Step by step, %s crossed!", n, n, n)
		} else {
			p5 = fmt.Sprintf("The final piece was across the Trembling Bridge. %s's heart hammered. \"I don't think I can do this.\" But courage isn't the absence of fear. It's taking the next step even when your voice shakes. One step. Then another.", n)
		}
	} else {
		if s.young {
			p5 = fmt.Sprintf("%s needed one more piece! It was hidden in a tricky spot. \"What would happen if I tried THIS?\" And it worked!", n)
		} else {
			p5 = fmt.Sprintf("The final component was behind a logic puzzle. %s stopped forcing it and asked, \"What is this really asking?\" The answer was simpler than expected.", n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              5,
		Text:                    p5,
		IllustrationDescription: fmt.Sprintf("%s bravely crossing a bridge or solving a puzzle", n),
		MoodColor:               s.color(4),
	})

	// Page 6: the Engine roars back.
	var p6 string
	if s.young {
		p6 = fmt.Sprintf("%s put the last piece in. WHOOOOSH! Colors exploded everywhere! ", n)
		if s.hasComp {
			p6 += fmt.Sprintf("%s clapped and jumped! ", f)
		} else {
			p6 += "All the creatures cheered! "
		}
		p6 += fmt.Sprintf("%s came back to life!", place)
	} else {
		p6 = fmt.Sprintf("%s slid the final piece in. A hum, a glow, and an explosion of color swept through %s. ", n, place)
		if s.hasComp {
			p6 += fmt.Sprintf("%s grabbed %s's hand, both laughing. ", f, n)
		} else {
			p6 += fmt.Sprintf("%s laughed out loud, pure joy. ", n)
		}
		p6 += "The stories were coming back."
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              6,
		Text:                    p6,
		IllustrationDescription: "Explosion of color as the Engine roars back",
		MoodColor:               s.color(5),
	})

	// Page 7: celebration, flavored by gratitude or growth lessons.
	var p7 string
	switch {
	case gratitude:
		if s.young {
			p7 = fmt.Sprintf("\"Thank you, %s!\" everyone said. \"Thank YOU,\" said %s. \"I'm so grateful for this adventure and for all of you!\"", n, n)
		} else {
			p7 = fmt.Sprintf("The inhabitants gathered to thank %s. But instead of just accepting praise, %s said, \"I'm the grateful one. None of this would have happened without all of you.\"", n, n)
		}
	case growth:
		if s.young {
			p7 = fmt.Sprintf("\"You did it!\" everyone cheered. %s smiled. \"I made lots of mistakes, but each one helped me learn!\"", n)
		} else {
			p7 = fmt.Sprintf("%s reflected: the mistakes weren't obstacles — they were the path. \"Every time I got it wrong, I got closer to right. That's the real secret.\"", n)
		}
	default:
		if s.young {
			p7 = fmt.Sprintf("Everyone celebrated! Music and dancing and the biggest party ever! %s was the hero!", n)
		} else {
			p7 = fmt.Sprintf("%s erupted in celebration. %s stood in the middle — not because of talent, but because of heart.", place, n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              7,
		Text:                    p7,
		IllustrationDescription: fmt.Sprintf("Celebration in %s", s.setting),
		MoodColor:               s.color(6),
	})

	// Page 8: back through the door.
	var p8 string
	if s.young {
		p8 = fmt.Sprintf("%s went back through the tiny door. ", n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s knew too! ", f)
		}
		p8 += fmt.Sprintf("Now %s knew: the best adventures come from being curious, kind, and never giving up. The End. ✨", n)
	} else {
		p8 = fmt.Sprintf("%s stepped back through the door. Everything looked the same — but %s was different. Braver. Kinder. More curious. ", n, n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s texted: \"Same time tomorrow?\" ", f)
		}
		p8 += fmt.Sprintf("%s whispered to the door, \"See you soon.\" The best stories never really end. The End. ✨", n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              8,
		Text:                    p8,
		IllustrationDescription: fmt.Sprintf("%s back home, touching the bookshelf door", n),
		MoodColor:               s.color(7),
	})

	return Rendered{
		Title:      fmt.Sprintf("%s and the Imagination Engine", n),
		Subtitle:   fmt.Sprintf("A story about wonder, %s, and never giving up", s.interest),
		Dedication: fmt.Sprintf("For %s — whose imagination makes the world more magical every day.", n),
		Pages:      pages,
	}
}
