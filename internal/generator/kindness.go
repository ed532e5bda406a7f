package generator

import (
	"fmt"

	"storyforge/internal/models"
)

// renderKindness fills the kindness template: a golden seed grows with every
// kind act until it becomes a tree that reseeds the whole world.
func renderKindness(s slots) Rendered {
	n, f := s.name, s.companion

	causeEffect := s.teaches("cause")
	secondOrder := s.teaches("second-order")
	sharing := s.teaches("sharing", "generosity")
	honesty := s.teaches("honesty")
	responsibility := s.teaches("responsibility")

	pages := make([]models.StoryPage, 0, TemplatePageCount)

	// Page 1: the seed falls.
	var p1 string
	if s.young {
		p1 = fmt.Sprintf("%s was having a normal day. %s was playing with %s when something strange happened — a little golden seed fell from the sky, right into %s's hand!", n, n, s.interest, n)
	} else {
		p1 = fmt.Sprintf("It started as an ordinary day. %s was enjoying %s when a tiny golden seed, no bigger than a marble, tumbled from the sky into %s's palm. It pulsed with warm light.", n, s.interest, n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              1,
		Text:                    p1,
		IllustrationDescription: fmt.Sprintf("%s with a tiny golden seed", n),
		MoodColor:               s.color(0),
	})

	// Page 2: the seed explains itself.
	var p2 string
	if s.young {
		p2 = fmt.Sprintf("A tiny voice came from the seed! \"I'm a Kindness Seed! Every time you do something kind, I grow. When I'm big enough, something wonderful happens!\" %s's eyes went wide. ", n)
		if s.hasComp {
			p2 += fmt.Sprintf("%s ran over. \"Can I help too?\"", f)
		}
	} else {
		p2 = "The seed hummed: \"I grow with every act of genuine kindness. Not for reward. Real kindness — the kind that costs you something.\" "
		if s.hasComp {
			p2 += fmt.Sprintf("%s appeared. \"What have you got there?\"", f)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              2,
		Text:                    p2,
		IllustrationDescription: fmt.Sprintf("%s holding the glowing seed", n),
		MoodColor:               s.color(1),
	})

	// Page 3: the first kind act.
	var p3 string
	if sharing {
		if s.young {
			p3 = fmt.Sprintf("%s saw a little creature sitting alone with no lunch. Without thinking, %s shared half of everything. \"Sharing makes everything better!\" The golden seed grew a tiny sprout!", n, n)
		} else {
			p3 = fmt.Sprintf("A shy creature sat alone at lunch, pretending not to be hungry. %s just sat down beside them and split lunch in half. \"Food tastes better with company.\" The seed sprouted its first leaf.", n)
		}
	} else {
		if s.young {
			p3 = fmt.Sprintf("%s noticed someone looking sad. \"What's wrong?\" The creature was lost! %s helped show the way home. The seed grew a sprout!", n, n)
		} else {
			p3 = fmt.Sprintf("%s noticed a creature struggling to find its way. Without being asked, %s stopped and helped. The seed sprouted its first leaf.", n, n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              3,
		Text:                    p3,
		IllustrationDescription: fmt.Sprintf("%s sharing/helping, seed sprouting", n),
		MoodColor:               s.color(2),
	})

	// Page 4: the ripple spreads.
	var p4 string
	if causeEffect {
		if s.young {
			p4 = fmt.Sprintf("Something amazing happened! The creature %s helped went and helped someone ELSE! And THAT person helped another! \"My one kind thing made THREE kind things happen!\" The seed grew bigger!", n)
		} else {
			p4 = fmt.Sprintf("Something unexpected: the creature %s helped turned and helped another. Who helped another. A chain of kindness, like ripples in a pond. \"One action can cause so many effects,\" %s realized. \"Everything is connected.\" The seed was now a small plant.", n, n)
		}
	} else {
		if s.young {
			p4 = fmt.Sprintf("%s helped another creature with %s. \"I know about %s!\" Together they figured it out. The seed grew even bigger!", n, s.interest2, s.interest2)
		} else {
			p4 = fmt.Sprintf("Next, %s helped someone struggling with %s. Instead of doing it for them, %s taught them how. \"Now you can help others too.\" The seed grew warm and strong.", n, s.interest2, n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              4,
		Text:                    p4,
		IllustrationDescription: "Ripple effect of kindness spreading",
		MoodColor:               s.color(3),
	})

	// Page 5: the hard choice. Honesty outranks responsibility when both
	// lessons are requested.
	var p5 string
	switch {
	case honesty:
		if s.young {
			p5 = fmt.Sprintf("Then %s accidentally broke something! It was scary, but %s told the truth. \"I did it. I'm sorry.\" Everyone was so proud of %s! \"Being honest is the bravest kind thing,\" said the elder. The seed grew VERY big!", n, n, n)
		} else {
			p5 = fmt.Sprintf("Then the hard part. %s accidentally broke something valuable. Nobody saw. It would be easy to stay quiet. But %s spoke up: \"I did this. I'm sorry.\" The elder smiled. \"Honesty when it's difficult is the truest kindness.\" The seed doubled in size.", n, n)
		}
	case responsibility:
		if s.young {
			p5 = fmt.Sprintf("%s saw a big mess. Instead of walking away, %s started cleaning up. \"If I can help fix it, I should!\" The seed grew really big!", n, n)
		} else {
			p5 = fmt.Sprintf("There was a mess — %s hadn't caused all of it but played a part. Instead of walking away, %s got to work. \"Responsibility isn't about blame. It's about doing what needs to be done.\" The seed was nearly a sapling.", n, n)
		}
	default:
		if s.young {
			p5 = fmt.Sprintf("%s kept finding ways to be kind all day. A smile here, a helping hand there. Each kindness made the seed grow bigger!", n)
		} else {
			p5 = fmt.Sprintf("%s continued finding small ways to make things better. A word of encouragement. A moment of patience. None grand — but each one mattered. The seed was now a sapling.", n)
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              5,
		Text:                    p5,
		IllustrationDescription: fmt.Sprintf("%s being honest/responsible, seed growing", n),
		MoodColor:               s.color(4),
	})

	// Page 6: the golden tree.
	var p6 string
	if secondOrder {
		if s.young {
			p6 = fmt.Sprintf("The seed was now a beautiful golden tree! %s thought: \"When I'm kind, people feel happy. And they're kind to others. My little seed changed EVERYTHING!\"", n)
		} else {
			p6 = fmt.Sprintf("The sapling was now a magnificent golden tree. %s thought deeply. \"It's not just about what happens first — it's what happens BECAUSE of what happens. My kindness didn't just help one person — it changed how people treat each other.\"", n)
		}
	} else {
		if s.young {
			p6 = fmt.Sprintf("The seed grew into a beautiful golden tree! Golden leaves floated down like blessings. Everyone gathered around. \"%s grew this!\" they whispered.", n)
		} else {
			p6 = "The seed was now a magnificent tree, golden branches stretching wide. Warm light filtered through its leaves, touching every corner. Creatures gathered, drawn by its warmth."
		}
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              6,
		Text:                    p6,
		IllustrationDescription: "A magnificent golden tree",
		MoodColor:               s.color(5),
	})

	// Page 7: the tree reseeds the world.
	var p7 string
	if s.young {
		p7 = fmt.Sprintf("The golden tree started dropping seeds — hundreds floating to everyone! Now EVERYONE could grow their own kindness! \"You started all of this, %s,\" smiled the elder.", n)
	} else {
		p7 = "Golden seeds fell from the tree like snow, drifting into outstretched hands. Each person now had their own kindness seed. \"You showed everyone that kindness is a choice available to all of us, every moment,\" the elder said."
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              7,
		Text:                    p7,
		IllustrationDescription: "Hundreds of golden seeds floating through the air",
		MoodColor:               s.color(6),
	})

	// Page 8: home with a new seed.
	var p8 string
	if s.young {
		p8 = fmt.Sprintf("%s went home holding a tiny new golden seed. ", n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s had one too! ", f)
		}
		p8 += "Every tomorrow was a chance to be kind, brave, and to make the world better. That was the most magical thing of all. The End. 💛"
	} else {
		p8 = fmt.Sprintf("%s walked home at sunset, a new seed warm in one pocket and a heart full of knowing that one person can change everything. Not with superpowers, but with simple kindness. ", n)
		if s.hasComp {
			p8 += fmt.Sprintf("%s walked alongside, seed glowing. ", f)
		}
		p8 += fmt.Sprintf("%s smiled at the stars. Tomorrow was going to be a very good day. The End. 💛", n)
	}
	pages = append(pages, models.StoryPage{
		PageNumber:              8,
		Text:                    p8,
		IllustrationDescription: fmt.Sprintf("%s walking home at sunset with a new seed", n),
		MoodColor:               s.color(7),
	})

	dedication := fmt.Sprintf("For %s — whose kindness makes the world bloom.", n)
	if s.hasComp {
		dedication += fmt.Sprintf(" And for %s, who makes every adventure better.", f)
	}

	return Rendered{
		Title:      fmt.Sprintf("%s and the Golden Seed", n),
		Subtitle:   "A story about how one small act of kindness can change everything",
		Dedication: dedication,
		Pages:      pages,
	}
}
