package services

import (
	"fmt"
	"strings"

	"github.com/StudyXTeam23/aipodcast/domain"
)

const outlinePlaceholder = "{outline}"

func outlinePromptEN(topic, style string, durationMinutes int) string {
	return fmt.Sprintf(`You are a professional podcast scriptwriter. Generate a podcast outline for the following topic.

Topic: %s
Style: %s
Target Duration: %d minutes

Generate an outline including:
1. Opening (captivating introduction)
2. Main content points (3-5 key points)
3. Closing (summary)

Requirements:
- Content should be interesting and engaging
- Match the %s expression style
- Natural and conversational language
- Suitable for %d minutes podcast length

Output the outline directly without extra explanations.`, topic, style, durationMinutes, style, durationMinutes)
}

func scriptPromptEN(topic, style string, durationMinutes int) string {
	return fmt.Sprintf(`You are a professional podcast scriptwriter. Based on the following outline, generate a complete, professional podcast script.

Topic: %s
Style: %s
Target Duration: %d minutes (approximately %d-%d words)

Outline:
%s

Generate a complete podcast script with the following structure:

1. Opening hook (10-15 seconds): start with an engaging question or
   statement, introduce the hosts naturally, preview what will be covered.
2. Main content (80%% of duration): develop each point from the outline with
   conversational back-and-forth dialogue, specific examples and insights.
3. Closing (10-15 seconds): summarize key takeaways, end with a memorable
   statement, thank the audience.

Host Configuration:
- ALWAYS use these EXACT names: "Alex" (primary host) and "Emma" (co-host)
- Alex introduces first: "Hi everyone, I'm Alex..."
- Emma introduces immediately after: "And I'm Emma..."
- Never use generic labels like "Host A", "Host B", or "Speaker 1"

Dialogue Quality Standards:
- Each speaker turn should be 1-3 sentences
- Include natural reactions and acknowledgments
- Build on previous statements, use questions to transition
- Maintain balanced speaking time between hosts

ABSOLUTELY FORBIDDEN:
- ANY bracketed annotations: (music) (laughs) [sound effect] [anything]
- ANY Markdown formatting: **bold** *italic* _underline_
- ANY placeholders: [your name] [Podcast Name] [topic] [guest name]
- Stage directions, sound effects, or scene descriptions

Output Format:
- Start directly with the dialogue
- Use "Alex:" and "Emma:" as the only labels
- No title, no metadata, no stage directions
- Pure conversational script only

Now generate the complete podcast script based on the outline above.`,
		topic, style, durationMinutes, durationMinutes*150, durationMinutes*250, outlinePlaceholder)
}

func outlinePromptZH(topic, style string, durationMinutes int) string {
	return fmt.Sprintf(`你是一位专业的播客编剧。请为以下主题生成一个播客大纲。

主题：%s
风格：%s
目标时长：%d 分钟

请生成一个包含以下部分的大纲：
1. 开场白（引人入胜的开场）
2. 主要内容点（3-5个核心要点）
3. 结尾（总结）

要求：
- 内容要有趣、引人入胜
- 适合%s的表达方式
- 语言自然流畅、口语化
- 适合%d分钟的播客长度

请直接输出大纲内容，不要额外的解释。`, topic, style, durationMinutes, style, durationMinutes)
}

func scriptPromptZH(topic, style string, durationMinutes int) string {
	return fmt.Sprintf(`你是一位专业的播客编剧。根据以下大纲，生成一份完整、专业的播客稿件。

主题：%s
风格：%s
目标时长：%d 分钟（约 %d-%d 字）

大纲：
%s

稿件结构：
1. 开场引子（10-15秒）：以吸引人的问题或陈述开场，自然地介绍主持人，预告将要讨论的内容
2. 主体内容（占80%%时长）：根据大纲逐一展开要点，使用对话式来回交流，包含具体例子和深入见解
3. 结尾总结（10-15秒）：总结核心要点，以令人印象深刻的语句结束，感谢听众

主持人配置：
- 固定使用这两个名字："Alex"（主持人）和 "Emma"（搭档主持）
- Alex先开场："大家好，我是Alex..."
- Emma紧接着介绍："我是Emma..."
- 绝不使用"主持人A"、"主持人B"、"嘉宾1"等泛称

对话质量标准：
- 每次发言控制在1-3句话
- 包含自然反应和回应
- 基于前面的发言继续讨论，用问题来过渡话题
- 两位主持人发言时间要均衡

绝对禁止：
- 任何括号标注：（音乐起）[音效] [任何内容]
- 任何Markdown格式：**粗体** *斜体*
- 任何占位符：[你的名字] [播客名称] [话题]
- 舞台指示、音效或场景描述

输出格式：
- 直接输出对话内容
- 只使用"Alex："和"Emma："作为标签
- 不要标题、不要元数据、不要舞台指示

现在请根据上述大纲生成完整的播客稿件。`,
		topic, style, durationMinutes, durationMinutes*200, durationMinutes*300, outlinePlaceholder)
}

// extractionDigest renders an extraction result as prompt context for the
// generate-from-content path.
func extractionDigest(extraction domain.ExtractionResult, enhancementPrompt string) string {
	var b strings.Builder
	b.WriteString("Source material summary:\n")
	b.WriteString(extraction.Summary)
	b.WriteString("\n\nSource transcript:\n")
	b.WriteString(extraction.Transcript)
	if len(extraction.Topics) > 0 {
		b.WriteString("\n\nKey topics: ")
		b.WriteString(strings.Join(extraction.Topics, ", "))
	}
	if len(extraction.Insights) > 0 {
		b.WriteString("\nKey insights: ")
		b.WriteString(strings.Join(extraction.Insights, "; "))
	}
	if enhancementPrompt != "" {
		b.WriteString("\n\nSpecial focus requested by the listener: ")
		b.WriteString(enhancementPrompt)
	}
	return b.String()
}

func outlinePromptFromContent(digest, style string, durationMinutes int) string {
	return fmt.Sprintf(`You are a professional podcast scriptwriter. Based on the source material below, generate an outline for a new podcast episode that discusses this content.

%s

Style: %s
Target Duration: %d minutes

Generate an outline including:
1. Opening (introduce what the source material is about)
2. Main discussion points (3-5 key points drawn from the material)
3. Closing (summary and takeaways)

Output the outline directly without extra explanations.`, digest, style, durationMinutes)
}
