// Copyright 2025 Agentic World, LLC (Sherin Thomas)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package capture

// revealAnimationLibraries finishes GSAP/ScrollTrigger/anime.js
// timelines in place so their end state is what gets serialized.
const revealAnimationLibraries = `(() => {
  try {
    if (window.gsap) {
      window.gsap.globalTimeline.getChildren(true, true, true).forEach(tl => { try { tl.progress(1); } catch (e) {} });
    }
    if (window.ScrollTrigger) {
      window.ScrollTrigger.getAll().forEach(st => { try { st.progress = 1; st.update(); } catch (e) {} });
    }
    if (window.anime && window.anime.running) {
      window.anime.running.forEach(a => { try { a.seek(a.duration); } catch (e) {} });
    }
  } catch (e) {}
})();`

// revealWebAnimations finishes every running Web Animations API
// animation on the document.
const revealWebAnimations = `(() => {
  try {
    document.getAnimations().forEach(a => { try { a.finish(); } catch (e) {} });
  } catch (e) {}
})();`

// revealScrollLibraries flips the classes AOS/WOW.js/data-sr ("scroll
// reveal") add once an element has entered the viewport, so elements
// that never scrolled into view during capture still render revealed.
const revealScrollLibraries = `(() => {
  try {
    document.querySelectorAll('[data-aos]').forEach(el => el.classList.add('aos-animate'));
    document.querySelectorAll('.wow').forEach(el => el.classList.add('animated'));
    document.querySelectorAll('[data-sr-id]').forEach(el => { el.style.opacity = '1'; el.style.transform = 'none'; });
  } catch (e) {}
})();`

// revealLazyLoad materializes common lazy-loading attribute conventions
// (data-src, data-bg, data-background) into the real loading attribute.
const revealLazyLoad = `(() => {
  try {
    document.querySelectorAll('[data-src]').forEach(el => { if (!el.src) el.src = el.getAttribute('data-src'); });
    document.querySelectorAll('[data-bg], [data-background]').forEach(el => {
      const bg = el.getAttribute('data-bg') || el.getAttribute('data-background');
      if (bg) el.style.backgroundImage = 'url(' + bg + ')';
    });
    document.querySelectorAll('img[loading="lazy"]').forEach(el => el.loading = 'eager');
  } catch (e) {}
})();`

// revealLottie advances every lottie-web animation on the page to its
// final frame.
const revealLottie = `(() => {
  try {
    if (window.lottie && typeof window.lottie.getRegisteredAnimations === 'function') {
      window.lottie.getRegisteredAnimations().forEach(anim => {
        try { anim.goToAndStop(anim.totalFrames - 1, true); } catch (e) {}
      });
    }
  } catch (e) {}
})();`

// revealForceVisible is the final pass: it forces any element still
// hidden by a fade/slide/reveal/show animation class or inline style to
// be visible, and disables transitions/animations so subsequent reads
// never race a mid-flight CSS transition.
const revealForceVisible = `(() => {
  try {
    const pattern = /anim|fade|slide|reveal|show/i;
    document.querySelectorAll('*').forEach(el => {
      const cls = el.className && el.className.toString ? el.className.toString() : '';
      if (pattern.test(cls)) {
        const style = window.getComputedStyle(el);
        if (style.opacity === '0' || style.visibility === 'hidden') {
          el.style.setProperty('opacity', '1', 'important');
          el.style.setProperty('visibility', 'visible', 'important');
          el.style.setProperty('transform', 'none', 'important');
        }
      }
    });
    const style = document.createElement('style');
    style.textContent = '*, *::before, *::after { animation-duration: 0s !important; transition-duration: 0s !important; }';
    document.head.appendChild(style);
  } catch (e) {}
})();`

// scrollScript eases the viewport from top to bottom in scrollStep
// increments, pausing at each step to trigger lazy-load and
// scroll-in-view observers, then returns to the top.
const scrollScript = `(() => {
  return new Promise(resolve => {
    const step = %d;
    const pause = %d;
    let y = 0;
    const max = document.body.scrollHeight;
    const tick = () => {
      if (y >= max) {
        window.scrollTo(0, 0);
        resolve(true);
        return;
      }
      window.scrollTo(0, y);
      y += step;
      setTimeout(tick, pause);
    };
    tick();
  });
})();`

// revealScripts runs, in order, every reveal pass §4.5 calls for.
var revealScripts = []string{
	revealAnimationLibraries,
	revealWebAnimations,
	revealScrollLibraries,
	revealLazyLoad,
	revealLottie,
}
